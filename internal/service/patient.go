package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"hospital-manager/internal/model"
	"hospital-manager/internal/repo"
)

// PersonInput carries the validated registration fields shared by patients
// and doctors.
type PersonInput struct {
	Name           string `validate:"required"`
	Age            int    `validate:"gte=0,lte=130"`
	Address        string `validate:"required"`
	Phone          string `validate:"required"`
	Email          string `validate:"required,email"`
	DocumentNumber string `validate:"required"`
}

func (in PersonInput) person() model.Person {
	return model.Person{
		Name:           in.Name,
		Age:            in.Age,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		DocumentNumber: in.DocumentNumber,
	}
}

type PatientService struct {
	repo     *repo.Repo[*model.Patient]
	validate *validator.Validate
}

func NewPatientService(r *repo.Repo[*model.Patient]) *PatientService {
	return &PatientService{repo: r, validate: validator.New()}
}

// Register creates a patient. The document number is checked against the
// cached kind before any remote call.
func (s *PatientService) Register(ctx context.Context, in PersonInput) (*model.Patient, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if s.documentTaken(in.DocumentNumber) {
		return nil, ErrDuplicateDocument
	}

	p := &model.Patient{Person: in.person()}
	if _, err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PatientService) documentTaken(doc string) bool {
	_, _, found := s.repo.Find(func(p *model.Patient) bool {
		return strings.EqualFold(p.DocumentNumber, doc)
	})
	return found
}

func (s *PatientService) List() []*model.Patient {
	out := s.repo.All()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *PatientService) FindByName(name string) (*model.Patient, error) {
	_, p, ok := repo.FindByName(s.repo, name)
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *PatientService) FindByID(id uuid.UUID) (*model.Patient, error) {
	_, p, ok := s.repo.Find(func(p *model.Patient) bool { return p.ID == id })
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Update replaces the whole record found by name; the id and appointment
// list are preserved.
func (s *PatientService) Update(ctx context.Context, name string, in PersonInput) (*model.Patient, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	key, existing, ok := repo.FindByName(s.repo, name)
	if !ok {
		return nil, ErrNotFound
	}

	updated := *existing
	updated.Person = in.person()
	updated.ID = existing.ID
	if err := s.repo.Update(ctx, key, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *PatientService) Delete(ctx context.Context, name string) error {
	return repo.DeleteByName(ctx, s.repo, name)
}

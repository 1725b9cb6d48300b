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

type DoctorInput struct {
	PersonInput
	Specialization string `validate:"required"`
}

type DoctorService struct {
	repo     *repo.Repo[*model.Doctor]
	validate *validator.Validate
}

func NewDoctorService(r *repo.Repo[*model.Doctor]) *DoctorService {
	return &DoctorService{repo: r, validate: validator.New()}
}

// Register creates a doctor. Document numbers are unique within the doctor
// kind, checked against the cache before any remote call.
func (s *DoctorService) Register(ctx context.Context, in DoctorInput) (*model.Doctor, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if s.documentTaken(in.DocumentNumber) {
		return nil, ErrDuplicateDocument
	}

	d := &model.Doctor{Person: in.person(), Specialization: in.Specialization}
	if _, err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DoctorService) documentTaken(doc string) bool {
	_, _, found := s.repo.Find(func(d *model.Doctor) bool {
		return strings.EqualFold(d.DocumentNumber, doc)
	})
	return found
}

func (s *DoctorService) List() []*model.Doctor {
	out := s.repo.All()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *DoctorService) FindByName(name string) (*model.Doctor, error) {
	_, d, ok := repo.FindByName(s.repo, name)
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *DoctorService) FindByID(id uuid.UUID) (*model.Doctor, error) {
	_, d, ok := s.repo.Find(func(d *model.Doctor) bool { return d.ID == id })
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *DoctorService) Update(ctx context.Context, name string, in DoctorInput) (*model.Doctor, error) {
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
	updated.Specialization = in.Specialization
	if err := s.repo.Update(ctx, key, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *DoctorService) Delete(ctx context.Context, name string) error {
	return repo.DeleteByName(ctx, s.repo, name)
}

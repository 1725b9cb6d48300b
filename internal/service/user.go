package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"hospital-manager/internal/auth"
	"hospital-manager/internal/model"
	"hospital-manager/internal/repo"
)

type UserInput struct {
	Name     string     `validate:"required"`
	Username string     `validate:"required,min=3"`
	Password string     `validate:"required,min=8"`
	Role     model.Role `validate:"required,oneof=Patient Doctor"`
}

type UserService struct {
	repo     *repo.Repo[*model.User]
	validate *validator.Validate
}

func NewUserService(r *repo.Repo[*model.User]) *UserService {
	return &UserService{repo: r, validate: validator.New()}
}

// Register creates a login linked to an existing patient or doctor record.
// Usernames are unique, checked against the cache before any remote call;
// passwords are stored as bcrypt hashes.
func (s *UserService) Register(ctx context.Context, in UserInput, linkedID uuid.UUID) (*model.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if s.usernameTaken(in.Username, "") {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		LinkedID:     linkedID,
	}
	if _, err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks credentials against the cached users. The same error
// covers an unknown username and a wrong password.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	_, u, ok := s.repo.Find(func(u *model.User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if !ok || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

func (s *UserService) usernameTaken(username, excludeKey string) bool {
	key, _, found := s.repo.Find(func(u *model.User) bool {
		return strings.EqualFold(u.Username, username)
	})
	return found && key != excludeKey
}

func (s *UserService) List() []*model.User {
	out := s.repo.All()
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// FindByLogin matches a username or display name, first hit wins.
func (s *UserService) FindByLogin(input string) (*model.User, error) {
	_, u, ok := s.repo.Find(func(u *model.User) bool {
		return strings.EqualFold(u.Username, input) || strings.EqualFold(u.Name, input)
	})
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// Update replaces name, username, password and role of the user found by
// username or name. A username switch is checked for uniqueness first.
func (s *UserService) Update(ctx context.Context, login string, in UserInput) (*model.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	key, existing, ok := s.repo.Find(func(u *model.User) bool {
		return strings.EqualFold(u.Username, login) || strings.EqualFold(u.Name, login)
	})
	if !ok {
		return nil, ErrNotFound
	}
	if s.usernameTaken(in.Username, key) {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = in.Name
	updated.Username = in.Username
	updated.PasswordHash = hash
	updated.Role = in.Role
	if err := s.repo.Update(ctx, key, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

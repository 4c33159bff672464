package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type userService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &userService{
		repo: repo,
	}
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListSortedByEmail(ctx)
}

func (s *userService) Create(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	user, err := userFromInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, id int64, input ports.UserInput) (*domain.User, error) {
	updated, err := userFromInput(input)
	if err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Email = updated.Email
	user.FirstName = updated.FirstName
	user.LastName = updated.LastName
	user.Role = updated.Role
	user.Enabled = updated.Enabled

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func userFromInput(input ports.UserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, errors.New("email is required")
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	return &domain.User{
		Email:     email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      role,
		Enabled:   input.Enabled,
	}, nil
}

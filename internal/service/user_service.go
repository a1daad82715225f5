package service

import (
	"context"
	"errors"
	"fmt"

	apperr "nutritrack/internal/errors"
	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

// UserService exposes profile operations for the signed in user.
type UserService interface {
	GetCurrentUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator Validator
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, validator Validator) UserService {
	return &userService{repo: repo, validator: validator}
}

func (s *userService) GetCurrentUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile validates and persists only the supplied fields.
func (s *userService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*model.User, error) {
	changes := in.changes()
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateProfile(ctx, id, changes)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

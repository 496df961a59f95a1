package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopper/internal/apperr"
	"shopper/internal/models"
	"shopper/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// UpdateProfile mutates profile fields only; id and email are immutable.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req repo.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Repo.UpdateProfile(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and cascades to its cart and tokens.
func (s *UserService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return err
	}
	return nil
}

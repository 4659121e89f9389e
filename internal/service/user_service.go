package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.UserRepository
	logger *zerolog.Logger
}

func NewUserService(repo domain.UserRepository, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)

	if user.Name == "" {
		return validationError("name is required")
	}
	if err := s.checkEmail(ctx, user.Email, 0); err != nil {
		return err
	}

	// UNIQUE в таблице users закрывает гонку между проверкой и вставкой
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return nil
}

// UpdateUser applies the non-nil fields of patch. The user's own email never conflicts.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationError("name must not be blank")
		}
		user.Name = name
	}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if err := s.checkEmail(ctx, email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return user, nil
}

// checkEmail validates the address and makes sure no user other than selfID owns it.
func (s *UserService) checkEmail(ctx context.Context, email string, selfID int64) error {
	if email == "" {
		return validationError("email is required")
	}
	if !validEmail(email) {
		return validationError("email %q is not a valid address", email)
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return conflict("email %s is already registered", email)
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

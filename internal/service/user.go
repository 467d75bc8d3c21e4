package service

import (
	"context"
	"fmt"
	"time"

	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"
	"business-hub-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserService handles signup and profile management
type UserService struct {
	repo      repository.UserRepositoryInterface
	hasher    *auth.Hasher
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, hasher *auth.Hasher, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		hasher:    hasher,
		validator: validator,
	}
}

// SignupRequest represents the request to register a user
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"john.doe@example.com"`
	Name     string `json:"name" validate:"required,max=200" example:"John Doe"`
	Password string `json:"password" validate:"required,min=6,max=72" example:"s3cret!"`
	Photo    string `json:"photo,omitempty" validate:"omitempty,max=500"`
}

// UpdateUserRequest represents a partial profile update
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Photo *string `json:"photo,omitempty" validate:"omitempty,max=500"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
}

// Signup registers a new user with a hashed password
func (s *UserService) Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	email := req.Email
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Name:     req.Name,
		Password: hash,
		Photo:    req.Photo,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.WithContext(ctx).WithField("user_id", user.ID).Info("User signed up")
	return toUserResponse(user), nil
}

// GetProfile returns the caller's profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserResponse(user), nil
}

// UpdateProfile applies the fields present in req to the caller's profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Photo != nil {
		user.Photo = *req.Photo
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Photo:     user.Photo,
		CreatedAt: user.CreatedAt,
	}
}

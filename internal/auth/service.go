package auth

import (
	"context"
	"fmt"
	"time"

	"business-hub-backend/internal/config"
	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"
	"business-hub-backend/internal/repository"

	"github.com/google/uuid"
)

// TokenResponse is returned by the login endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"3600"`
}

// Service authenticates credentials and issues session tokens
type Service struct {
	users      repository.UserRepositoryInterface
	members    repository.CompanyMemberRepositoryInterface
	codec      *TokenCodec
	hasher     *Hasher
	sessionTTL time.Duration

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewService creates a new session service
func NewService(cfg *config.Config, users repository.UserRepositoryInterface, members repository.CompanyMemberRepositoryInterface, codec *TokenCodec, hasher *Hasher) *Service {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		dummy = ""
	}
	return &Service{
		users:      users,
		members:    members,
		codec:      codec,
		hasher:     hasher,
		sessionTTL: cfg.SessionTTL(),
		dummyHash:  dummy,
	}
}

// Codec exposes the token codec shared with the invitation workflow
func (s *Service) Codec() *TokenCodec {
	return s.codec
}

// Authenticate verifies email and password and issues a session token that
// snapshots the caller's membership. Unknown emails and wrong passwords fail
// with the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			s.hasher.Compare(s.dummyHash, password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !s.hasher.Compare(user.Password, password) {
		logger.WithContext(ctx).WithField("email", user.Email).Info("Rejected login with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.IssueSession(ctx, user)
}

// IssueSession signs a session token for user with the membership read now
func (s *Service) IssueSession(ctx context.Context, user *models.User) (*TokenResponse, error) {
	member, err := s.members.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	claims := &SessionClaims{Email: user.Email}
	claims.Subject = user.ID.String()
	if member != nil {
		companyID := member.CompanyID
		role := member.Role
		claims.CompanyID = &companyID
		claims.Role = &role
	}

	token, err := s.codec.Encode(claims, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.sessionTTL.Seconds()),
	}, nil
}

// ValidateSession decodes a bearer token into session claims
func (s *Service) ValidateSession(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.codec.Decode(token, claims); err != nil {
		return nil, err
	}
	if _, err := claims.UserID(); err != nil {
		return nil, apperrors.NewInvalidTokenError("Invalid or expired token", err)
	}
	return claims, nil
}

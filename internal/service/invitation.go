package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"business-hub-backend/internal/access"
	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/config"
	"business-hub-backend/internal/database"
	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"
	"business-hub-backend/internal/mail"
	"business-hub-backend/internal/metrics"
	"business-hub-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPosition   = "Employee"
	invitationSubject = "Invitation link"
)

// Caller identifies an authenticated user redeeming an invitation
type Caller struct {
	UserID uuid.UUID
	Email  string
}

// InvitationService issues and redeems invitation tokens
type InvitationService struct {
	db          *gorm.DB
	cfg         *config.Config
	codec       *auth.TokenCodec
	userRepo    repository.UserRepositoryInterface
	companyRepo repository.CompanyRepositoryInterface
	memberRepo  repository.CompanyMemberRepositoryInterface
	policy      *access.Policy
	mailer      mail.Sender
	metrics     *metrics.Metrics
	validator   *validator.Validate
}

// NewInvitationService creates a new invitation service
func NewInvitationService(
	db *gorm.DB,
	cfg *config.Config,
	codec *auth.TokenCodec,
	userRepo repository.UserRepositoryInterface,
	companyRepo repository.CompanyRepositoryInterface,
	memberRepo repository.CompanyMemberRepositoryInterface,
	policy *access.Policy,
	mailer mail.Sender,
	m *metrics.Metrics,
	validator *validator.Validate,
) *InvitationService {
	return &InvitationService{
		db:          db,
		cfg:         cfg,
		codec:       codec,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		memberRepo:  memberRepo,
		policy:      policy,
		mailer:      mailer,
		metrics:     m,
		validator:   validator,
	}
}

// InvitationLinkResponse carries a generic invitation link
type InvitationLinkResponse struct {
	Link      string    `json:"link" example:"/api/v1/company/invitation/join?token=eyJhbGciOi..."`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// JoinResponse is returned after a successful redemption
type JoinResponse struct {
	Message   string            `json:"message" example:"You have successfully joined the company"`
	CompanyID uuid.UUID         `json:"company_id"`
	Role      models.MemberRole `json:"role"`
	Position  string            `json:"position"`
}

// IssueLink creates a generic invitation to the caller's company that
// anyone holding it can redeem. Admin only.
func (s *InvitationService) IssueLink(ctx context.Context, caller *models.CompanyMember, position string) (*InvitationLinkResponse, error) {
	if err := s.policy.Check(caller, access.ResourceInvitation, access.ActionWrite); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.encode(caller.CompanyID, position, "")
	if err != nil {
		return nil, err
	}
	s.metrics.InvitationIssued(metrics.ModeLink)

	return &InvitationLinkResponse{
		Link:      s.cfg.APIPrefix + "/company/invitation/join?token=" + url.QueryEscape(token),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// SendInvitation issues an invitation bound to email and mails the join link
// to it. Admin only. Fails with Conflict when the address already belongs to
// a member of any company.
func (s *InvitationService) SendInvitation(ctx context.Context, caller *models.CompanyMember, email string) (*MessageResponse, error) {
	if err := s.policy.Check(caller, access.ResourceInvitation, access.ActionWrite); err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	if err := s.validator.Var(email, "required,email,max=255"); err != nil {
		return nil, apperrors.NewValidationError("email", "must be a valid email address")
	}

	existing, err := s.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyMember
	}

	token, _, err := s.encode(caller.CompanyID, defaultPosition, email)
	if err != nil {
		return nil, err
	}

	link := s.cfg.ServerURL + s.cfg.APIPrefix + "/company/join?token=" + url.QueryEscape(token)
	if err := s.mailer.Send(ctx, invitationSubject, link, []string{email}); err != nil {
		return nil, fmt.Errorf("failed to send invitation: %w", err)
	}
	s.metrics.InvitationIssued(metrics.ModeTargeted)

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"company_id": caller.CompanyID,
		"invitee":    email,
	}).Info("Invitation sent")

	return &MessageResponse{Message: "Invitation link sent successfully"}, nil
}

// Redeem turns an invitation into a membership row.
//
// A generic invitation needs an authenticated caller. A targeted invitation
// names its invitee, so it may be redeemed without a session; when a session
// is present its email must match the invitee. The membership insert runs in
// a transaction and the unique index on user_id settles concurrent attempts:
// one wins, the others get a Conflict.
func (s *InvitationService) Redeem(ctx context.Context, token string, caller *Caller) (resp *JoinResponse, err error) {
	defer func() { s.metrics.InvitationRedeemed(err) }()

	claims := &auth.InvitationClaims{}
	if err := s.codec.Decode(token, claims); err != nil {
		return nil, apperrors.NewInvalidTokenError("Invalid or expired invitation token", err)
	}
	if !claims.Role.IsValid() {
		return nil, apperrors.NewInvalidTokenError("Invalid or expired invitation token",
			fmt.Errorf("unknown role %q", claims.Role))
	}

	user, err := s.resolveInvitee(ctx, claims, caller)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, claims.CompanyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	position := claims.Position
	if position == "" {
		position = defaultPosition
	}
	member := &models.CompanyMember{
		UserID:    user.ID,
		CompanyID: company.ID,
		Role:      claims.Role,
		Position:  position,
	}

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		members := s.memberRepo.WithTx(tx)
		existing, err := members.FindByUserID(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if existing != nil {
			return apperrors.ErrAlreadyMember
		}
		if err := members.Create(ctx, member); err != nil {
			if repository.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyMember
			}
			return fmt.Errorf("failed to create membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"company_id": company.ID,
		"user_id":    user.ID,
		"targeted":   claims.Targeted(),
	}).Info("Invitation redeemed")

	message := "You have successfully joined the company"
	if !claims.Targeted() {
		message = "You have successfully joined the company: " + company.Name
	}
	return &JoinResponse{
		Message:   message,
		CompanyID: company.ID,
		Role:      member.Role,
		Position:  member.Position,
	}, nil
}

func (s *InvitationService) resolveInvitee(ctx context.Context, claims *auth.InvitationClaims, caller *Caller) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case claims.Targeted():
		if caller != nil && !strings.EqualFold(caller.Email, claims.NewMemberEmail) {
			return nil, apperrors.ErrInvitationMismatch
		}
		user, err = s.userRepo.GetByEmail(ctx, claims.NewMemberEmail)
	case caller == nil:
		return nil, apperrors.ErrMissingCredentials
	default:
		user, err = s.userRepo.GetByID(ctx, caller.UserID)
	}
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *InvitationService) encode(companyID uuid.UUID, position, email string) (string, time.Time, error) {
	if position = strings.TrimSpace(position); position == "" {
		position = defaultPosition
	}
	claims := &auth.InvitationClaims{
		CompanyID:      companyID,
		Role:           models.MemberRoleMember,
		Position:       position,
		NewMemberEmail: email,
	}
	token, err := s.codec.Encode(claims, s.cfg.InvitationTTL())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign invitation: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

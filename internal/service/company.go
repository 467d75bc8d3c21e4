package service

import (
	"context"
	"fmt"
	"time"

	"business-hub-backend/internal/access"
	"business-hub-backend/internal/database"
	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"
	"business-hub-backend/internal/metrics"
	"business-hub-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const founderPosition = "Founder"

// CompanyService handles company creation, profile and member listing
type CompanyService struct {
	db          *gorm.DB
	companyRepo repository.CompanyRepositoryInterface
	memberRepo  repository.CompanyMemberRepositoryInterface
	policy      *access.Policy
	metrics     *metrics.Metrics
	validator   *validator.Validate
}

// NewCompanyService creates a new company service
func NewCompanyService(
	db *gorm.DB,
	companyRepo repository.CompanyRepositoryInterface,
	memberRepo repository.CompanyMemberRepositoryInterface,
	policy *access.Policy,
	m *metrics.Metrics,
	validator *validator.Validate,
) *CompanyService {
	return &CompanyService{
		db:          db,
		companyRepo: companyRepo,
		memberRepo:  memberRepo,
		policy:      policy,
		metrics:     m,
		validator:   validator,
	}
}

// CompanyRequest carries the editable company profile
type CompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200" example:"Acme Inc"`
	Email       string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=500"`
	Industry    string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Website     string `json:"website,omitempty" validate:"omitempty,max=255"`
	Description string `json:"description,omitempty"`
}

// CompanyResponse represents the response for company operations
type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCompanyResponse is returned after a company is founded
type CreateCompanyResponse struct {
	Message string           `json:"message" example:"Company created successfully"`
	Company *CompanyResponse `json:"company"`
}

// MemberResponse is one row of the member list
type MemberResponse struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Photo    string            `json:"photo,omitempty"`
	Position string            `json:"position"`
	Role     models.MemberRole `json:"role"`
}

// Create founds a company and makes the creator its Admin. Both rows are
// written in one transaction; callers who already belong to a company get
// a Conflict and nothing is written.
func (s *CompanyService) Create(ctx context.Context, creatorID uuid.UUID, req *CompanyRequest) (*CreateCompanyResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	existing, err := s.memberRepo.FindByUserID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrMembershipExists
	}

	company := &models.Company{OwnerID: creatorID}
	applyCompanyRequest(company, req)

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.companyRepo.WithTx(tx).Create(ctx, company); err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		founder := &models.CompanyMember{
			UserID:    creatorID,
			CompanyID: company.ID,
			Role:      models.MemberRoleAdmin,
			Position:  founderPosition,
		}
		if err := s.memberRepo.WithTx(tx).Create(ctx, founder); err != nil {
			if repository.IsUniqueViolation(err) {
				return apperrors.ErrMembershipExists
			}
			return fmt.Errorf("failed to create founding member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CompanyCreated()
	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"company_id": company.ID,
		"slug":       company.Slug,
	}).Info("Company created")

	return &CreateCompanyResponse{
		Message: "Company created successfully",
		Company: toCompanyResponse(company),
	}, nil
}

// Get returns the caller's company. Asking for another company is Forbidden.
func (s *CompanyService) Get(ctx context.Context, caller *models.CompanyMember, companyID uuid.UUID) (*CompanyResponse, error) {
	if err := s.policy.CheckCompany(caller, companyID, access.ResourceCompany, access.ActionRead); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return toCompanyResponse(company), nil
}

// Update replaces the company profile. Admin only.
func (s *CompanyService) Update(ctx context.Context, caller *models.CompanyMember, companyID uuid.UUID, req *CompanyRequest) (*CompanyResponse, error) {
	if err := s.policy.CheckCompany(caller, companyID, access.ResourceCompany, access.ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	applyCompanyRequest(company, req)
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return toCompanyResponse(company), nil
}

// ListMembers lists every member of the caller's company
func (s *CompanyService) ListMembers(ctx context.Context, caller *models.CompanyMember) ([]MemberResponse, error) {
	if err := s.policy.Check(caller, access.ResourceMember, access.ActionRead); err != nil {
		return nil, err
	}

	rows, err := s.memberRepo.ListByCompanyID(ctx, caller.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]MemberResponse, len(rows))
	for i, row := range rows {
		members[i] = MemberResponse{
			ID:       row.UserID,
			Name:     row.Name,
			Email:    row.Email,
			Photo:    row.Photo,
			Position: row.Position,
			Role:     row.Role,
		}
	}
	return members, nil
}

func applyCompanyRequest(company *models.Company, req *CompanyRequest) {
	company.Name = req.Name
	company.Slug = slug.Make(req.Name)
	company.Email = req.Email
	company.Phone = req.Phone
	company.Address = req.Address
	company.Industry = req.Industry
	company.Website = req.Website
	company.Description = req.Description
}

func toCompanyResponse(company *models.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Slug:        company.Slug,
		Email:       company.Email,
		Phone:       company.Phone,
		Address:     company.Address,
		Industry:    company.Industry,
		Website:     company.Website,
		Description: company.Description,
		OwnerID:     company.OwnerID,
		CreatedAt:   company.CreatedAt,
		UpdatedAt:   company.UpdatedAt,
	}
}

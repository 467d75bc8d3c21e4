package service

import (
	"context"
	"fmt"
	"time"

	"business-hub-backend/internal/access"
	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	repo      repository.ProjectRepositoryInterface
	policy    *access.Policy
	validator *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepositoryInterface, policy *access.Policy, validator *validator.Validate) *ProjectService {
	return &ProjectService{
		repo:      repo,
		policy:    policy,
		validator: validator,
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200" example:"Website relaunch"`
	Description string `json:"description,omitempty"`
}

// ProjectResponse represents the response for project operations
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Create creates a project in the caller's company
func (s *ProjectService) Create(ctx context.Context, caller *models.CompanyMember, req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.policy.Check(caller, access.ResourceProject, access.ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	project := &models.Project{
		CompanyID:   caller.CompanyID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return toProjectResponse(project), nil
}

// GetByID retrieves a project of the caller's company
func (s *ProjectService) GetByID(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) (*ProjectResponse, error) {
	if err := s.policy.Check(caller, access.ResourceProject, access.ActionRead); err != nil {
		return nil, err
	}

	project, err := s.repo.GetByIDForCompany(ctx, id, caller.CompanyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return toProjectResponse(project), nil
}

// List lists the projects of the caller's company
func (s *ProjectService) List(ctx context.Context, caller *models.CompanyMember) ([]ProjectResponse, error) {
	if err := s.policy.Check(caller, access.ResourceProject, access.ActionRead); err != nil {
		return nil, err
	}

	projects, err := s.repo.ListByCompanyID(ctx, caller.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *toProjectResponse(&projects[i])
	}
	return responses, nil
}

func toProjectResponse(project *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          project.ID,
		CompanyID:   project.CompanyID,
		Title:       project.Title,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

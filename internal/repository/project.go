package repository

import (
	"context"

	"business-hub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Company", "Tasks").Create(project).Error
}

// GetByIDForCompany retrieves a project only if it belongs to companyID
func (r *ProjectRepository) GetByIDForCompany(ctx context.Context, id, companyID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ? AND company_id = ?", id, companyID).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByCompanyID lists the projects of a company, oldest first
func (r *ProjectRepository) ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("created_at ASC").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

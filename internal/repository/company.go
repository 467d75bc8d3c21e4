package repository

import (
	"context"

	"business-hub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx
func (r *CompanyRepository) WithTx(tx *gorm.DB) CompanyRepositoryInterface {
	return &CompanyRepository{db: tx}
}

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Omit("Owner", "Members").Create(company).Error
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Update updates a company
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Omit("Owner", "Members").Save(company).Error
}

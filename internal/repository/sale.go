package repository

import (
	"context"

	"business-hub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository handles database operations for the sales ledger
type SaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create creates a new sale
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit("Company").Create(sale).Error
}

// GetByIDForCompany retrieves a sale only if it belongs to companyID
func (r *SaleRepository) GetByIDForCompany(ctx context.Context, id, companyID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ? AND company_id = ?", id, companyID).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListByCompanyID lists a company's sales, newest first
func (r *SaleRepository) ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("sold_at DESC").Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// Update updates a sale
func (r *SaleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit("Company").Save(sale).Error
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"business-hub-backend/internal/access"
	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"
	"business-hub-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SaleService handles the company sales ledger. Every operation is Admin only.
type SaleService struct {
	repo      repository.SaleRepositoryInterface
	policy    *access.Policy
	validator *validator.Validate
	now       func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(repo repository.SaleRepositoryInterface, policy *access.Policy, validator *validator.Validate) *SaleService {
	return &SaleService{
		repo:      repo,
		policy:    policy,
		validator: validator,
		now:       time.Now,
	}
}

// CreateSaleRequest represents the request to record a sale
type CreateSaleRequest struct {
	CustomerName string     `json:"customer_name" validate:"required,max=200" example:"Acme Corp"`
	Product      string     `json:"product" validate:"required,max=200" example:"Widget"`
	Quantity     int        `json:"quantity,omitempty" validate:"omitempty,min=1" example:"3"`
	Amount       int64      `json:"amount" validate:"min=0" example:"4999"`
	Currency     string     `json:"currency,omitempty" validate:"omitempty,len=3" example:"USD"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// UpdateSaleRequest represents a partial sale update
type UpdateSaleRequest struct {
	CustomerName *string    `json:"customer_name,omitempty" validate:"omitempty,min=1,max=200"`
	Product      *string    `json:"product,omitempty" validate:"omitempty,min=1,max=200"`
	Quantity     *int       `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Amount       *int64     `json:"amount,omitempty" validate:"omitempty,min=0"`
	Currency     *string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// UpdateSaleStatusRequest moves a sale through its lifecycle
type UpdateSaleStatusRequest struct {
	Status models.SaleStatus `json:"status" validate:"required" example:"completed"`
}

// SaleResponse represents the response for sale operations
type SaleResponse struct {
	ID           uuid.UUID         `json:"id"`
	CompanyID    uuid.UUID         `json:"company_id"`
	CustomerName string            `json:"customer_name"`
	Product      string            `json:"product"`
	Quantity     int               `json:"quantity"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       models.SaleStatus `json:"status"`
	SoldAt       time.Time         `json:"sold_at"`
	Notes        string            `json:"notes"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Create records a pending sale in the caller's company
func (s *SaleService) Create(ctx context.Context, caller *models.CompanyMember, req *CreateSaleRequest) (*SaleResponse, error) {
	if err := s.policy.Check(caller, access.ResourceSale, access.ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		CompanyID:    caller.CompanyID,
		CustomerName: req.CustomerName,
		Product:      req.Product,
		Quantity:     req.Quantity,
		Amount:       req.Amount,
		Currency:     strings.ToUpper(req.Currency),
		Status:       models.SaleStatusPending,
		Notes:        req.Notes,
	}
	if sale.Quantity == 0 {
		sale.Quantity = 1
	}
	if sale.Currency == "" {
		sale.Currency = "USD"
	}
	if req.SoldAt != nil {
		sale.SoldAt = req.SoldAt.UTC()
	} else {
		sale.SoldAt = s.now().UTC()
	}

	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	return toSaleResponse(sale), nil
}

// List returns the caller's company sales, newest first
func (s *SaleService) List(ctx context.Context, caller *models.CompanyMember) ([]SaleResponse, error) {
	if err := s.policy.Check(caller, access.ResourceSale, access.ActionRead); err != nil {
		return nil, err
	}

	sales, err := s.repo.ListByCompanyID(ctx, caller.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = *toSaleResponse(&sales[i])
	}
	return responses, nil
}

// GetByID retrieves a sale of the caller's company
func (s *SaleService) GetByID(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) (*SaleResponse, error) {
	if err := s.policy.Check(caller, access.ResourceSale, access.ActionRead); err != nil {
		return nil, err
	}

	sale, err := s.getSale(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Update applies the fields present in req. Cancelled sales are frozen.
func (s *SaleService) Update(ctx context.Context, caller *models.CompanyMember, id uuid.UUID, req *UpdateSaleRequest) (*SaleResponse, error) {
	if err := s.policy.Check(caller, access.ResourceSale, access.ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	sale, err := s.getSale(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if sale.Status == models.SaleStatusCancelled {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	if req.CustomerName != nil {
		sale.CustomerName = *req.CustomerName
	}
	if req.Product != nil {
		sale.Product = *req.Product
	}
	if req.Quantity != nil {
		sale.Quantity = *req.Quantity
	}
	if req.Amount != nil {
		sale.Amount = *req.Amount
	}
	if req.Currency != nil {
		sale.Currency = strings.ToUpper(*req.Currency)
	}
	if req.SoldAt != nil {
		sale.SoldAt = req.SoldAt.UTC()
	}
	if req.Notes != nil {
		sale.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return toSaleResponse(sale), nil
}

// UpdateStatus moves a sale to status. Cancelling voids the sale and is final.
func (s *SaleService) UpdateStatus(ctx context.Context, caller *models.CompanyMember, id uuid.UUID, status models.SaleStatus) (*SaleResponse, error) {
	if err := s.policy.Check(caller, access.ResourceSale, access.ActionWrite); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	sale, err := s.getSale(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !sale.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	from := sale.Status
	sale.Status = status
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to update sale status: %w", err)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"sale_id": sale.ID,
		"from":    from,
		"to":      status,
	}).Info("Sale status changed")

	return toSaleResponse(sale), nil
}

func (s *SaleService) getSale(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) (*models.Sale, error) {
	sale, err := s.repo.GetByIDForCompany(ctx, id, caller.CompanyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

func toSaleResponse(sale *models.Sale) *SaleResponse {
	return &SaleResponse{
		ID:           sale.ID,
		CompanyID:    sale.CompanyID,
		CustomerName: sale.CustomerName,
		Product:      sale.Product,
		Quantity:     sale.Quantity,
		Amount:       sale.Amount,
		Currency:     sale.Currency,
		Status:       sale.Status,
		SoldAt:       sale.SoldAt,
		Notes:        sale.Notes,
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
	}
}

package repository

import (
	"context"

	"business-hub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	WithTx(tx *gorm.DB) UserRepositoryInterface
}

// CompanyRepositoryInterface defines the interface for company repository operations
type CompanyRepositoryInterface interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	WithTx(tx *gorm.DB) CompanyRepositoryInterface
}

// CompanyMemberRepositoryInterface defines the interface for the membership store
type CompanyMemberRepositoryInterface interface {
	Create(ctx context.Context, member *models.CompanyMember) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.CompanyMember, error)
	FindByEmail(ctx context.Context, email string) (*models.CompanyMember, error)
	ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]MemberWithUser, error)
	WithTx(tx *gorm.DB) CompanyMemberRepositoryInterface
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(ctx context.Context, project *models.Project) error
	GetByIDForCompany(ctx context.Context, id, companyID uuid.UUID) (*models.Project, error)
	ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]models.Project, error)
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByIDForCompany(ctx context.Context, id, companyID uuid.UUID) (*models.Task, error)
	ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.KanbanStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, member *models.TaskMember) error
	RemoveMember(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, taskIDs []uuid.UUID) ([]TaskMemberWithUser, error)
}

// SaleRepositoryInterface defines the interface for sale repository operations
type SaleRepositoryInterface interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByIDForCompany(ctx context.Context, id, companyID uuid.UUID) (*models.Sale, error)
	ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]models.Sale, error)
	Update(ctx context.Context, sale *models.Sale) error
}

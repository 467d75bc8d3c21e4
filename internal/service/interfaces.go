package service

import (
	"context"

	"business-hub-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
}

// CompanyServiceInterface defines the interface for company service
type CompanyServiceInterface interface {
	Create(ctx context.Context, creatorID uuid.UUID, req *CompanyRequest) (*CreateCompanyResponse, error)
	Get(ctx context.Context, caller *models.CompanyMember, companyID uuid.UUID) (*CompanyResponse, error)
	Update(ctx context.Context, caller *models.CompanyMember, companyID uuid.UUID, req *CompanyRequest) (*CompanyResponse, error)
	ListMembers(ctx context.Context, caller *models.CompanyMember) ([]MemberResponse, error)
}

// InvitationServiceInterface defines the interface for invitation service
type InvitationServiceInterface interface {
	IssueLink(ctx context.Context, caller *models.CompanyMember, position string) (*InvitationLinkResponse, error)
	SendInvitation(ctx context.Context, caller *models.CompanyMember, email string) (*MessageResponse, error)
	Redeem(ctx context.Context, token string, caller *Caller) (*JoinResponse, error)
}

// ProjectServiceInterface defines the interface for project service
type ProjectServiceInterface interface {
	Create(ctx context.Context, caller *models.CompanyMember, req *CreateProjectRequest) (*ProjectResponse, error)
	GetByID(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) (*ProjectResponse, error)
	List(ctx context.Context, caller *models.CompanyMember) ([]ProjectResponse, error)
}

// TaskServiceInterface defines the interface for task service
type TaskServiceInterface interface {
	Create(ctx context.Context, caller *models.CompanyMember, req *CreateTaskRequest) (*TaskResponse, error)
	GetByID(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) (*TaskResponse, error)
	ListByProject(ctx context.Context, caller *models.CompanyMember, projectID uuid.UUID) (*ProjectTasksResponse, error)
	Update(ctx context.Context, caller *models.CompanyMember, id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error)
	UpdateStatus(ctx context.Context, caller *models.CompanyMember, id uuid.UUID, status models.KanbanStatus) (*TaskResponse, error)
	Delete(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) error
	AddMember(ctx context.Context, caller *models.CompanyMember, taskID uuid.UUID, req *AddTaskMemberRequest) (*TaskResponse, error)
	RemoveMember(ctx context.Context, caller *models.CompanyMember, taskID, userID uuid.UUID) error
}

// SaleServiceInterface defines the interface for sale service
type SaleServiceInterface interface {
	Create(ctx context.Context, caller *models.CompanyMember, req *CreateSaleRequest) (*SaleResponse, error)
	List(ctx context.Context, caller *models.CompanyMember) ([]SaleResponse, error)
	GetByID(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) (*SaleResponse, error)
	Update(ctx context.Context, caller *models.CompanyMember, id uuid.UUID, req *UpdateSaleRequest) (*SaleResponse, error)
	UpdateStatus(ctx context.Context, caller *models.CompanyMember, id uuid.UUID, status models.SaleStatus) (*SaleResponse, error)
}

var (
	_ UserServiceInterface       = (*UserService)(nil)
	_ CompanyServiceInterface    = (*CompanyService)(nil)
	_ InvitationServiceInterface = (*InvitationService)(nil)
	_ ProjectServiceInterface    = (*ProjectService)(nil)
	_ TaskServiceInterface       = (*TaskService)(nil)
	_ SaleServiceInterface       = (*SaleService)(nil)
)

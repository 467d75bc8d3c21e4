package testutils

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"business-hub-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a unique email
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{ID: id},
		Email:     fmt.Sprintf("user-%s@example.com", id.String()[:8]),
		Name:      "Test User",
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = strings.ToLower(email)
	return user
}

// CompanyFactory provides methods to create test Company data
type CompanyFactory struct{}

// NewCompanyFactory creates a new CompanyFactory
func NewCompanyFactory() *CompanyFactory {
	return &CompanyFactory{}
}

// Create creates a test Company owned by ownerID
func (f *CompanyFactory) Create(ownerID uuid.UUID) *models.Company {
	return &models.Company{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		Name:        "Test Company",
		Slug:        "test-company",
		Email:       "contact@test-company.com",
		Industry:    "Retail",
		Description: "A test company for testing purposes",
		OwnerID:     ownerID,
	}
}

// MemberFactory provides methods to create test CompanyMember data
type MemberFactory struct{}

// NewMemberFactory creates a new MemberFactory
func NewMemberFactory() *MemberFactory {
	return &MemberFactory{}
}

// Create creates a test membership with the given role
func (f *MemberFactory) Create(userID, companyID uuid.UUID, role models.MemberRole) *models.CompanyMember {
	position := "Employee"
	if role == models.MemberRoleAdmin {
		position = "Founder"
	}
	return &models.CompanyMember{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		Position:  position,
	}
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project in companyID
func (f *ProjectFactory) Create(companyID uuid.UUID) *models.Project {
	return &models.Project{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		CompanyID:   companyID,
		Title:       "Test Project",
		Description: "A test project for testing purposes",
	}
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task in projectID assigned to assigneeID
func (f *TaskFactory) Create(projectID, assigneeID uuid.UUID) *models.Task {
	return &models.Task{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		ProjectID:   projectID,
		Title:       "Test Task",
		Description: "A test task for testing purposes",
		Status:      models.KanbanStatusTodo,
		Priority:    "medium",
		AssigneeID:  assigneeID,
	}
}

// SaleFactory provides methods to create test Sale data
type SaleFactory struct{}

// NewSaleFactory creates a new SaleFactory
func NewSaleFactory() *SaleFactory {
	return &SaleFactory{}
}

// Create creates a pending test Sale in companyID
func (f *SaleFactory) Create(companyID uuid.UUID) *models.Sale {
	return &models.Sale{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		CompanyID:    companyID,
		CustomerName: "Acme Corp",
		Product:      "Widget",
		Quantity:     2,
		Amount:       1999,
		Currency:     "USD",
		Status:       models.SaleStatusPending,
		SoldAt:       time.Now().UTC(),
	}
}

// FactorySet provides access to all factories
type FactorySet struct {
	User    *UserFactory
	Company *CompanyFactory
	Member  *MemberFactory
	Project *ProjectFactory
	Task    *TaskFactory
	Sale    *SaleFactory
}

// NewFactorySet creates a new set of all factories
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:    NewUserFactory(),
		Company: NewCompanyFactory(),
		Member:  NewMemberFactory(),
		Project: NewProjectFactory(),
		Task:    NewTaskFactory(),
		Sale:    NewSaleFactory(),
	}
}

// Tenant is a company seeded with an Admin founder and one plain Member
type Tenant struct {
	Company     *models.Company
	Admin       *models.User
	AdminMember *models.CompanyMember
	Member      *models.User
	MemberRow   *models.CompanyMember
}

// SeedUser inserts a user with the given email and password hash
func (fs *FactorySet) SeedUser(t *testing.T, db *gorm.DB, email, passwordHash string) *models.User {
	t.Helper()
	user := fs.User.WithEmail(email)
	user.Password = passwordHash
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// SeedTenant inserts a company with an Admin and a Member
func (fs *FactorySet) SeedTenant(t *testing.T, db *gorm.DB) *Tenant {
	t.Helper()
	admin := fs.SeedUser(t, db, "admin-"+uuid.NewString()[:8]+"@example.com", "")
	member := fs.SeedUser(t, db, "member-"+uuid.NewString()[:8]+"@example.com", "")

	company := fs.Company.Create(admin.ID)
	require.NoError(t, db.Omit("Owner", "Members").Create(company).Error)

	adminRow := fs.Member.Create(admin.ID, company.ID, models.MemberRoleAdmin)
	require.NoError(t, db.Omit("User").Create(adminRow).Error)
	memberRow := fs.Member.Create(member.ID, company.ID, models.MemberRoleMember)
	require.NoError(t, db.Omit("User").Create(memberRow).Error)

	return &Tenant{
		Company:     company,
		Admin:       admin,
		AdminMember: adminRow,
		Member:      member,
		MemberRow:   memberRow,
	}
}

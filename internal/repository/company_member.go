package repository

import (
	"context"
	"strings"

	"business-hub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberWithUser is a membership row joined with the user it belongs to
type MemberWithUser struct {
	UserID   uuid.UUID
	Name     string
	Email    string
	Photo    string
	Role     models.MemberRole
	Position string
}

// CompanyMemberRepository is the membership store
type CompanyMemberRepository struct {
	db *gorm.DB
}

// NewCompanyMemberRepository creates a new company member repository
func NewCompanyMemberRepository(db *gorm.DB) *CompanyMemberRepository {
	return &CompanyMemberRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx
func (r *CompanyMemberRepository) WithTx(tx *gorm.DB) CompanyMemberRepositoryInterface {
	return &CompanyMemberRepository{db: tx}
}

// Create inserts a membership row. A second row for the same user fails on
// the unique index; see IsUniqueViolation.
func (r *CompanyMemberRepository) Create(ctx context.Context, member *models.CompanyMember) error {
	return r.db.WithContext(ctx).Omit("User").Create(member).Error
}

// FindByUserID returns the user's membership, or nil when the user has none
func (r *CompanyMemberRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.CompanyMember, error) {
	var member models.CompanyMember
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&member).Error
	if err != nil {
		return nil, err
	}
	if member.ID == uuid.Nil {
		return nil, nil
	}
	return &member, nil
}

// FindByEmail returns the membership of the user with the given email, or nil
func (r *CompanyMemberRepository) FindByEmail(ctx context.Context, email string) (*models.CompanyMember, error) {
	var member models.CompanyMember
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = company_members.user_id").
		Where("users.email = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Find(&member).Error
	if err != nil {
		return nil, err
	}
	if member.ID == uuid.Nil {
		return nil, nil
	}
	return &member, nil
}

// ListByCompanyID lists every member of a company with their user details
func (r *CompanyMemberRepository) ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]MemberWithUser, error) {
	var rows []MemberWithUser
	err := r.db.WithContext(ctx).
		Table("company_members").
		Select("company_members.user_id, users.name, users.email, users.photo, company_members.role, company_members.position").
		Joins("JOIN users ON users.id = company_members.user_id").
		Where("company_members.company_id = ?", companyID).
		Order("company_members.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

package models

import "github.com/google/uuid"

// CompanyMember links a user to their company. The unique index on UserID
// is the storage-level guarantee that a user belongs to at most one company.
type CompanyMember struct {
	BaseModel
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_company_members_user"`
	CompanyID uuid.UUID  `json:"company_id" gorm:"type:uuid;not null;index"`
	Role      MemberRole `json:"role" gorm:"type:varchar(20);not null;default:'Member'"`
	Position  string     `json:"position" gorm:"size:100"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for CompanyMember
func (CompanyMember) TableName() string {
	return "company_members"
}

// IsAdmin reports whether the membership carries the Admin role
func (m *CompanyMember) IsAdmin() bool {
	return m != nil && m.Role == MemberRoleAdmin
}

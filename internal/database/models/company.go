package models

import "github.com/google/uuid"

// Company is the tenant every membership, project and sale hangs off
type Company struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null;size:200"`
	Slug        string    `json:"slug" gorm:"index;size:200"`
	Email       string    `json:"email" gorm:"size:255"`
	Phone       string    `json:"phone" gorm:"size:50"`
	Address     string    `json:"address" gorm:"size:500"`
	Industry    string    `json:"industry" gorm:"size:100"`
	Website     string    `json:"website" gorm:"size:255"`
	Description string    `json:"description" gorm:"type:text"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Owner   User            `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	Members []CompanyMember `json:"members,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Company
func (Company) TableName() string {
	return "companies"
}

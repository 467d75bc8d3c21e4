package models

import "github.com/google/uuid"

// Project groups the tasks of one company board
type Project struct {
	BaseModel
	CompanyID   uuid.UUID `json:"company_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"type:text"`

	// Relationships
	Company Company `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Tasks   []Task  `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is one entry in a company's sales ledger. Amount is in minor units.
type Sale struct {
	BaseModel
	CompanyID    uuid.UUID  `json:"company_id" gorm:"type:uuid;not null;index"`
	CustomerName string     `json:"customer_name" gorm:"not null;size:200"`
	Product      string     `json:"product" gorm:"not null;size:200"`
	Quantity     int        `json:"quantity" gorm:"not null;default:1"`
	Amount       int64      `json:"amount" gorm:"not null"`
	Currency     string     `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Status       SaleStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	SoldAt       time.Time  `json:"sold_at"`
	Notes        string     `json:"notes" gorm:"type:text"`

	// Relationships
	Company Company `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

package models

// User is an account that can sign in and belong to at most one company
type User struct {
	BaseModel
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Name     string `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	Password string `json:"-" gorm:"not null;size:255"`
	Photo    string `json:"photo,omitempty" gorm:"size:500"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

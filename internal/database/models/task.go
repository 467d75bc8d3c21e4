package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a kanban card inside a project
type Task struct {
	BaseModel
	ProjectID   uuid.UUID    `json:"project_id" gorm:"type:uuid;not null;index"`
	Title       string       `json:"title" gorm:"not null;size:200"`
	Description string       `json:"description" gorm:"type:text"`
	Status      KanbanStatus `json:"status" gorm:"type:varchar(20);not null;default:'todo'"`
	Priority    string       `json:"priority" gorm:"size:20"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	AssigneeID  uuid.UUID    `json:"assignee_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Members []TaskMember `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// TaskMember assigns an additional company member to a task
type TaskMember struct {
	BaseModel
	TaskID uuid.UUID `json:"task_id" gorm:"type:uuid;not null;uniqueIndex:idx_task_members_task_user"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_task_members_task_user"`
	Work   string    `json:"work" gorm:"size:200"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TaskMember
func (TaskMember) TableName() string {
	return "task_members"
}

package repository

import (
	"context"

	"business-hub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskMemberWithUser is a task member joined with the user and their company position
type TaskMemberWithUser struct {
	TaskID   uuid.UUID
	UserID   uuid.UUID
	Name     string
	Photo    string
	Work     string
	Position string
}

// TaskRepository handles database operations for tasks and task members
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Members").Create(task).Error
}

// GetByIDForCompany retrieves a task whose project belongs to companyID
func (r *TaskRepository) GetByIDForCompany(ctx context.Context, id, companyID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.company_id = ?", id, companyID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProjectID lists the tasks of a project, oldest first
func (r *TaskRepository) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at ASC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Members").Save(task).Error
}

// UpdateStatus moves a task to another board column
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.KanbanStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete deletes a task and its member assignments
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
}

// AddMember assigns a user to a task
func (r *TaskRepository) AddMember(ctx context.Context, member *models.TaskMember) error {
	return r.db.WithContext(ctx).Omit("User").Create(member).Error
}

// RemoveMember removes a user from a task and reports whether a row was deleted
func (r *TaskRepository) RemoveMember(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("task_id = ? AND user_id = ?", taskID, userID).Delete(&models.TaskMember{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListMembers lists the members of the given tasks with their user details
func (r *TaskRepository) ListMembers(ctx context.Context, taskIDs []uuid.UUID) ([]TaskMemberWithUser, error) {
	var rows []TaskMemberWithUser
	if len(taskIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Table("task_members").
		Select("task_members.task_id, task_members.user_id, users.name, users.photo, task_members.work, company_members.position").
		Joins("JOIN users ON users.id = task_members.user_id").
		Joins("LEFT JOIN company_members ON company_members.user_id = task_members.user_id").
		Where("task_members.task_id IN ?", taskIDs).
		Order("task_members.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

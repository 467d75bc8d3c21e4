package service

import (
	"context"
	"fmt"
	"time"

	"business-hub-backend/internal/access"
	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"
	"business-hub-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TaskService handles the kanban board: tasks, their status and members
type TaskService struct {
	taskRepo    repository.TaskRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface
	memberRepo  repository.CompanyMemberRepositoryInterface
	policy      *access.Policy
	validator   *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo repository.TaskRepositoryInterface,
	projectRepo repository.ProjectRepositoryInterface,
	memberRepo repository.CompanyMemberRepositoryInterface,
	policy *access.Policy,
	validator *validator.Validate,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		policy:      policy,
		validator:   validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	ProjectID   uuid.UUID           `json:"project_id" validate:"required"`
	Title       string              `json:"title" validate:"required,min=1,max=200" example:"Draft landing page"`
	Description string              `json:"description,omitempty"`
	Status      models.KanbanStatus `json:"status,omitempty" example:"todo"`
	Priority    string              `json:"priority,omitempty" validate:"omitempty,max=20" example:"high"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,max=20"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskStatusRequest moves a task to another column
type UpdateTaskStatusRequest struct {
	Status models.KanbanStatus `json:"status" validate:"required" example:"in_progress"`
}

// AddTaskMemberRequest assigns a company member to a task
type AddTaskMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Work   string    `json:"work,omitempty" validate:"omitempty,max=200" example:"Copywriting"`
}

// TaskMemberResponse is one member of a task
type TaskMemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Photo    string    `json:"photo,omitempty"`
	Work     string    `json:"work"`
	Position string    `json:"position"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID          uuid.UUID            `json:"id"`
	ProjectID   uuid.UUID            `json:"project_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.KanbanStatus  `json:"status"`
	Priority    string               `json:"priority"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	AssigneeID  uuid.UUID            `json:"assignee_id"`
	Members     []TaskMemberResponse `json:"members"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProjectTasksResponse is a project together with its board
type ProjectTasksResponse struct {
	ProjectID   uuid.UUID      `json:"project_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tasks       []TaskResponse `json:"tasks"`
}

// Create adds a task to a project of the caller's company. The caller
// becomes the assignee. Admin only.
func (s *TaskService) Create(ctx context.Context, caller *models.CompanyMember, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := s.policy.Check(caller, access.ResourceTask, access.ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.KanbanStatusTodo
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if _, err := s.projectRepo.GetByIDForCompany(ctx, req.ProjectID, caller.CompanyID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	task := &models.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeID:  caller.UserID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return toTaskResponse(task, nil), nil
}

// GetByID returns a task with its members
func (s *TaskService) GetByID(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) (*TaskResponse, error) {
	if err := s.policy.Check(caller, access.ResourceTask, access.ActionRead); err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.taskRepo.ListMembers(ctx, []uuid.UUID{task.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list task members: %w", err)
	}
	return toTaskResponse(task, rows), nil
}

// ListByProject returns a project's tasks with their members
func (s *TaskService) ListByProject(ctx context.Context, caller *models.CompanyMember, projectID uuid.UUID) (*ProjectTasksResponse, error) {
	if err := s.policy.Check(caller, access.ResourceTask, access.ActionRead); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByIDForCompany(ctx, projectID, caller.CompanyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	tasks, err := s.taskRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	ids := make([]uuid.UUID, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	rows, err := s.taskRepo.ListMembers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list task members: %w", err)
	}

	byTask := make(map[uuid.UUID][]repository.TaskMemberWithUser, len(tasks))
	for _, row := range rows {
		byTask[row.TaskID] = append(byTask[row.TaskID], row)
	}

	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *toTaskResponse(&tasks[i], byTask[tasks[i].ID])
	}

	return &ProjectTasksResponse{
		ProjectID:   project.ID,
		Title:       project.Title,
		Description: project.Description,
		Tasks:       responses,
	}, nil
}

// Update applies the fields present in req. Admin only.
func (s *TaskService) Update(ctx context.Context, caller *models.CompanyMember, id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	if err := s.policy.Check(caller, access.ResourceTask, access.ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.GetByID(ctx, caller, id)
}

// UpdateStatus moves a task to another column. Admin only.
func (s *TaskService) UpdateStatus(ctx context.Context, caller *models.CompanyMember, id uuid.UUID, status models.KanbanStatus) (*TaskResponse, error) {
	if err := s.policy.Check(caller, access.ResourceTask, access.ActionWrite); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	task, err := s.getTask(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.UpdateStatus(ctx, task.ID, status); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"task_id": task.ID,
		"from":    task.Status,
		"to":      status,
	}).Info("Task status changed")

	return s.GetByID(ctx, caller, task.ID)
}

// Delete removes a task and its member assignments. Admin only.
func (s *TaskService) Delete(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) error {
	if err := s.policy.Check(caller, access.ResourceTask, access.ActionWrite); err != nil {
		return err
	}

	task, err := s.getTask(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddMember assigns a member of the same company to a task. Admin only.
func (s *TaskService) AddMember(ctx context.Context, caller *models.CompanyMember, taskID uuid.UUID, req *AddTaskMemberRequest) (*TaskResponse, error) {
	if err := s.policy.Check(caller, access.ResourceTask, access.ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	target, err := s.memberRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	if target == nil || target.CompanyID != caller.CompanyID {
		return nil, apperrors.ErrMemberNotFound
	}

	assignment := &models.TaskMember{
		TaskID: task.ID,
		UserID: req.UserID,
		Work:   req.Work,
	}
	if err := s.taskRepo.AddMember(ctx, assignment); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrTaskMemberExists
		}
		return nil, fmt.Errorf("failed to add task member: %w", err)
	}
	return s.GetByID(ctx, caller, task.ID)
}

// RemoveMember unassigns a user from a task. Admin only.
func (s *TaskService) RemoveMember(ctx context.Context, caller *models.CompanyMember, taskID, userID uuid.UUID) error {
	if err := s.policy.Check(caller, access.ResourceTask, access.ActionWrite); err != nil {
		return err
	}

	task, err := s.getTask(ctx, caller, taskID)
	if err != nil {
		return err
	}

	removed, err := s.taskRepo.RemoveMember(ctx, task.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove task member: %w", err)
	}
	if !removed {
		return apperrors.ErrTaskMemberNotFound
	}
	return nil
}

func (s *TaskService) getTask(ctx context.Context, caller *models.CompanyMember, id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByIDForCompany(ctx, id, caller.CompanyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func toTaskResponse(task *models.Task, rows []repository.TaskMemberWithUser) *TaskResponse {
	members := make([]TaskMemberResponse, len(rows))
	for i, row := range rows {
		members[i] = TaskMemberResponse{
			UserID:   row.UserID,
			Name:     row.Name,
			Photo:    row.Photo,
			Work:     row.Work,
			Position: row.Position,
		}
	}
	return &TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		AssigneeID:  task.AssigneeID,
		Members:     members,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

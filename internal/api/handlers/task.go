package handlers

import (
	"net/http"

	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles HTTP requests for the task board
type TaskHandler struct {
	tasks service.TaskServiceInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks service.TaskServiceInterface) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask handles POST /tasks
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} service.TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Admin only"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), auth.GetMembership(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /tasks/:id
// @Summary Get a task with its members
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Success 200 {object} service.TaskResponse
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), auth.GetMembership(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /tasks/:id
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param task body service.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} service.TaskResponse
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), auth.GetMembership(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus handles PATCH /tasks/:id/status
// @Summary Move a task to another column
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param status body service.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} service.TaskResponse
// @Failure 400 {object} ErrorResponse "Unknown status"
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	var req service.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), auth.GetMembership(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/:id
// @Summary Delete a task
// @Tags tasks
// @Param id path string true "Task ID (UUID)"
// @Success 204 "Task deleted"
// @Failure 403 {object} ErrorResponse "Admin only"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), auth.GetMembership(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddTaskMember handles POST /tasks/:id/members
// @Summary Assign a company member to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param member body service.AddTaskMemberRequest true "Member to assign"
// @Success 200 {object} service.TaskResponse
// @Failure 404 {object} ErrorResponse "Task or member not found"
// @Failure 409 {object} ErrorResponse "Already assigned"
// @Security BearerAuth
// @Router /tasks/{id}/members [post]
func (h *TaskHandler) AddTaskMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	var req service.AddTaskMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.tasks.AddMember(c.Request.Context(), auth.GetMembership(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// RemoveTaskMember handles DELETE /tasks/:id/members/:user_id
// @Summary Unassign a member from a task
// @Tags tasks
// @Param id path string true "Task ID (UUID)"
// @Param user_id path string true "User ID (UUID)"
// @Success 204 "Member removed"
// @Failure 404 {object} ErrorResponse "Task or assignment not found"
// @Security BearerAuth
// @Router /tasks/{id}/members/{user_id} [delete]
func (h *TaskHandler) RemoveTaskMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id", "user")
	if !ok {
		return
	}

	if err := h.tasks.RemoveMember(c.Request.Context(), auth.GetMembership(c), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projects service.ProjectServiceInterface
	tasks    service.TaskServiceInterface
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects service.ProjectServiceInterface, tasks service.TaskServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		tasks:    tasks,
	}
}

// CreateProject handles POST /projects
// @Summary Create a new project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body service.CreateProjectRequest true "Project data"
// @Success 201 {object} service.ProjectResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), auth.GetMembership(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListProjects handles GET /projects
// @Summary List projects of the caller's company
// @Tags projects
// @Produce json
// @Success 200 {array} service.ProjectResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), auth.GetMembership(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /projects/:id
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), auth.GetMembership(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// GetProjectTasks handles GET /projects/:id/tasks
// @Summary Project board
// @Description The project title and description together with its tasks and their members
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectTasksResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (h *ProjectHandler) GetProjectTasks(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	board, err := h.tasks.ListByProject(c.Request.Context(), auth.GetMembership(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

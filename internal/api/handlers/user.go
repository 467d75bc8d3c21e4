package handlers

import (
	"net/http"

	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user accounts
type UserHandler struct {
	users service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(users service.UserServiceInterface) *UserHandler {
	return &UserHandler{users: users}
}

// SignupResponse is returned after registration
type SignupResponse struct {
	Message string                `json:"message" example:"User created Successfully"`
	User    *service.UserResponse `json:"user"`
}

// Signup handles POST /users/signup
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.SignupRequest true "Account data"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /users/signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{Message: "User created Successfully", User: user})
}

// Me handles GET /users/me
// @Summary Current user profile
// @Tags users
// @Produce json
// @Success 200 {object} service.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me
// @Summary Update current user profile
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.UpdateUserRequest true "Fields to change"
// @Success 200 {object} service.UserResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID, _ := auth.GetUserID(c)
	user, err := h.users.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

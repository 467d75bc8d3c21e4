package auth

import (
	"net/http"
	"strings"

	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// LoginRequest accepts either a JSON body or an OAuth2-style password form.
// Username carries the email address; Email is accepted as an alias in JSON.
type LoginRequest struct {
	Username string `json:"username" form:"username" example:"john.doe@example.com"`
	Email    string `json:"email" form:"email" example:"john.doe@example.com"`
	Password string `json:"password" form:"password" example:"s3cret"`
}

func (r *LoginRequest) identity() string {
	if r.Username != "" {
		return strings.TrimSpace(r.Username)
	}
	return strings.TrimSpace(r.Email)
}

// Handler serves the login endpoint
type Handler struct {
	service *Service
}

// NewHandler creates a new authentication handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /users/login
// @Summary Log in
// @Description Exchange email and password for a bearer session token
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} map[string]interface{} "Malformed request"
// @Failure 401 {object} map[string]interface{} "Invalid email or password"
// @Router /users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.identity() == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	resp, err := h.service.Authenticate(c.Request.Context(), req.identity(), req.Password)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.WithContext(c.Request.Context()).WithError(err).Error("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

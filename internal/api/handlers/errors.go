package handlers

import (
	"net/http"

	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// statusFor maps the application error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsAlreadyExists(err):
		return http.StatusConflict
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsInvalidToken(err):
		return http.StatusBadRequest
	case apperrors.IsAuthentication(err):
		return http.StatusUnauthorized
	case apperrors.IsAuthorization(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the matching status. Unclassified errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		_ = c.Error(err)
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + label + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

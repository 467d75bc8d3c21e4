package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "business-hub-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.ErrTaskNotFound, http.StatusNotFound},
		{"conflict", apperrors.ErrAlreadyMember, http.StatusConflict},
		{"validation", apperrors.NewValidationError("email", "required"), http.StatusBadRequest},
		{"bad transition", fmt.Errorf("sale: %w", apperrors.ErrInvalidStatusTransition), http.StatusBadRequest},
		{"invalid token", apperrors.NewInvalidTokenError("Invalid or expired invitation token", nil), http.StatusBadRequest},
		{"unauthorized", apperrors.ErrMissingCredentials, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrInvitationMismatch, http.StatusForbidden},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := parseIDParam(c, "id", "task")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid task ID"}`, w.Body.String())
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "task"}
		assert.Equal(t, "task not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "task"}
		err2 := &NotFoundError{Entity: "task"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		assert.False(t, errors.Is(ErrTaskNotFound, ErrSaleNotFound))
	})

	t.Run("IsNotFound helper through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("lookup: %w", ErrCompanyNotFound)
		assert.True(t, IsNotFound(wrapped))
		assert.False(t, IsNotFound(ErrUserExists))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		assert.Equal(t, "user already exists with this email", ErrUserExists.Error())
	})

	t.Run("Error message override", func(t *testing.T) {
		assert.Equal(t, "You already own or belong to a company", ErrMembershipExists.Error())
	})

	t.Run("errors.Is compares entity only", func(t *testing.T) {
		assert.True(t, errors.Is(ErrAlreadyMember, ErrMembershipExists))
		assert.False(t, errors.Is(ErrUserExists, ErrMembershipExists))
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrTaskMemberExists))
		assert.False(t, IsAlreadyExists(ErrTaskNotFound))
	})
}

func TestValidationError(t *testing.T) {
	assert.Equal(t, "validation error: status - unknown", NewValidationError("status", "unknown").Error())
	assert.Equal(t, "validation error: bad", NewValidationError("", "bad").Error())
	assert.True(t, IsValidation(ErrInvalidStatus))
	assert.True(t, IsValidation(fmt.Errorf("sale: %w", ErrInvalidStatusTransition)))
	assert.False(t, IsValidation(ErrSaleNotFound))
}

func TestAuthErrors(t *testing.T) {
	assert.True(t, IsAuthentication(ErrInvalidCredentials))
	assert.False(t, IsAuthentication(ErrNoCompany))
	assert.True(t, IsAuthorization(ErrNoCompany))
	assert.True(t, IsAuthorization(NewAuthorizationError("Admins only")))
	assert.False(t, IsAuthorization(ErrInvalidCredentials))
}

func TestInvalidTokenError(t *testing.T) {
	cause := errors.New("token is expired")
	err := NewInvalidTokenError("Invalid or expired invitation token", cause)

	assert.Equal(t, "Invalid or expired invitation token", err.Error())
	assert.True(t, IsInvalidToken(err))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsInvalidToken(ErrInvalidCredentials))
}

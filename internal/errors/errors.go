package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents a conflict with an existing entity
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this email"
	Message string // Overrides the generated message when set
}

func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// InvalidTokenError is returned for expired, tampered or malformed tokens
type InvalidTokenError struct {
	Message string
	Cause   error
}

func (e *InvalidTokenError) Error() string {
	return e.Message
}

func (e *InvalidTokenError) Unwrap() error {
	return e.Cause
}

// Entity Not Found Errors
var (
	ErrUserNotFound       = &NotFoundError{Entity: "user"}
	ErrCompanyNotFound    = &NotFoundError{Entity: "company"}
	ErrMemberNotFound     = &NotFoundError{Entity: "company member"}
	ErrProjectNotFound    = &NotFoundError{Entity: "project"}
	ErrTaskNotFound       = &NotFoundError{Entity: "task"}
	ErrTaskMemberNotFound = &NotFoundError{Entity: "task member"}
	ErrSaleNotFound       = &NotFoundError{Entity: "sale"}
)

// Conflict Errors
var (
	ErrUserExists       = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrMembershipExists = &AlreadyExistsError{
		Entity:  "company membership",
		Message: "You already own or belong to a company",
	}
	ErrAlreadyMember = &AlreadyExistsError{
		Entity:  "company membership",
		Message: "User is already a member of a company",
	}
	ErrTaskMemberExists = &AlreadyExistsError{Entity: "task member", Context: "for this task"}
)

// Authentication Errors
var (
	ErrInvalidCredentials  = &AuthenticationError{Message: "Invalid email or password"}
	ErrMissingCredentials  = &AuthenticationError{Message: "Authentication required"}
	ErrInvalidSessionToken = &AuthenticationError{Message: "Invalid or expired session token"}
)

// Authorization Errors
var (
	ErrNoCompany          = &AuthorizationError{Message: "You are not associated with any company"}
	ErrNotCompanyMember   = &AuthorizationError{Message: "You are not associated with this company"}
	ErrInvitationMismatch = &AuthorizationError{Message: "This invitation was issued to a different email address"}
)

// Business Logic Errors
var (
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidStatusTransition)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsInvalidToken checks if an error is an InvalidTokenError
func IsInvalidToken(err error) bool {
	var tokenErr *InvalidTokenError
	return errors.As(err, &tokenErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// NewInvalidTokenError creates a new InvalidTokenError wrapping the decoder failure
func NewInvalidTokenError(message string, cause error) error {
	return &InvalidTokenError{Message: message, Cause: cause}
}

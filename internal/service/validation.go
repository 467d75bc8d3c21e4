package service

import (
	"errors"
	"fmt"
	"strings"

	apperrors "business-hub-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// validateStruct runs the validator and converts its failures into a
// ValidationError naming the first offending field
func validateStruct(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(strings.ToLower(fe.Field()), fmt.Sprintf("failed on '%s'", fe.Tag()))
	}
	return apperrors.NewValidationError("", err.Error())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

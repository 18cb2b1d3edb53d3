package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ErrorDetail struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError reports which request fields failed which rule. It matches
// errors.Is(err, ErrValidation).
type ValidationError struct {
	Details []ErrorDetail
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s (%s)", d.Field, d.Rule))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) ToErrorDetails() []ErrorDetail { return e.Details }

func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		ve := &ValidationError{}
		for _, fe := range fieldErrors {
			ve.Details = append(ve.Details, ErrorDetail{Field: fe.Field(), Rule: fe.Tag()})
		}
		return ve
	}
	return err
}

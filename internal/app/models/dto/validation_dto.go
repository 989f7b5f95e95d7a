package dto

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/maritimetq/talentquest/internal/pkg/validation"
)

// HandleValidationError converts a binding error into an ErrorDetail
// listing every failing field.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := NewValidationErrors()
		for _, fe := range verrs {
			fieldErrors.AddError(validation.FieldPath(fe), validation.Message(fe))
		}

		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").
			WithDetails(fieldErrors.Errors)
		if len(fieldErrors.Errors) == 1 {
			detail = detail.WithField(fieldErrors.Errors[0].Field)
		}
		return detail
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").
			WithField(typeErr.Field).
			WithDetails(typeErr.Field + " must be a " + typeErr.Type.String())
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
}

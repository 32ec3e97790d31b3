package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/meetline/api/internal/domain"
)

// AppValidator wraps go-playground/validator for echo.
type AppValidator struct {
	validator *validator.Validate
}

// NewAppValidator creates a new AppValidator.
func NewAppValidator() *AppValidator {
	return &AppValidator{validator: validator.New()}
}

// Validate validates a struct using go-playground/validator tags. Failures
// are reported as invalid-input domain errors; handlers replace the message
// with the endpoint's canonical one.
func (v *AppValidator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return domain.E(domain.ErrInvalidInput, fe.Field()+" failed on '"+fe.Tag()+"' validation")
		}
		return domain.E(domain.ErrInvalidInput, "The request body is invalid")
	}
	return nil
}

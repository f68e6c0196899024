package validator

import (
	"github.com/go-playground/validator/v10"

	"legalease-api/core/errors"
)

// Validator adapts go-playground/validator to echo.Validator
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.NewAppError(errors.ErrInvalidRequestData, err.Error(), err)
	}
	return nil
}

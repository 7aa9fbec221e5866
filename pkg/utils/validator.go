package utils

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("installments", validateInstallmentCount)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Installment counts the gateway accepts for card payments.
func validateInstallmentCount(fl validator.FieldLevel) bool {
	allowed := map[int64]bool{
		1:  true,
		2:  true,
		3:  true,
		6:  true,
		9:  true,
		12: true,
	}
	return allowed[fl.Field().Int()]
}

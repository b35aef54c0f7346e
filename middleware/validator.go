package middleware

import (
	"github.com/go-playground/validator/v10"

	"github.com/padraicbc/racetracker/operations"
)

// Validator plugs go-playground/validator into echo's Context.Validate.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validator: operations.NewValidator()}
}

func (v *Validator) Validate(i any) error {
	return v.validator.Struct(i)
}

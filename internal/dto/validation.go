package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations installs decimal-aware rules on Gin's validator
// engine: `dgt0` (decimal strictly positive) and `dgte0` (decimal zero or
// positive). Amounts are decimal.Decimal structs, which the numeric rules of
// the validator cannot inspect.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}

	if err := v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.GreaterThan(decimal.Zero)
	}); err != nil {
		return err
	}

	return v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.GreaterThanOrEqual(decimal.Zero)
	})
}

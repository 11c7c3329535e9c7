package handlers

import (
	"fmt"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// customValidators back the domain enums used in binding tags.
var customValidators = map[string]validator.Func{
	"gender": func(fl validator.FieldLevel) bool {
		return domain.IsValidGender(fl.Field().String())
	},
	"bloodgroup": func(fl validator.FieldLevel) bool {
		return domain.IsValidBloodGroup(fl.Field().String())
	},
	"dayofweek": func(fl validator.FieldLevel) bool {
		return domain.IsValidDayOfWeek(fl.Field().String())
	},
	"pricetype": func(fl validator.FieldLevel) bool {
		return domain.PriceType(fl.Field().String()).IsValid()
	},
	"updatetype": func(fl validator.FieldLevel) bool {
		return domain.PriceUpdateType(fl.Field().String()).IsValid()
	},
	"expensecategory": func(fl validator.FieldLevel) bool {
		return domain.ExpenseCategory(fl.Field().String()).IsValid()
	},
}

// RegisterValidators installs the custom tags on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	for tag, fn := range customValidators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validator %s: %w", tag, err)
		}
	}
	return nil
}

// pkg/customvalidator/validators.go

package customvalidator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"field-service/internal/entities"
)

// RegisterCustomValidations registers the project's validation tags on v.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("action_key", isActionKey); err != nil {
		return err
	}
	if err := v.RegisterValidation("notblank", isNotBlank); err != nil {
		return err
	}
	return nil
}

func isActionKey(fl validator.FieldLevel) bool {
	_, ok := entities.ParseActionKey(fl.Field().String())
	return ok
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Package validation wraps go-playground/validator so every service input is
// checked the same way and failures come back as apperr validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"talenthub/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so clients can map errors back.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns nil or an *apperr.Error of kind validation.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("invalid input", nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = message(e)
	}
	return apperr.Validation(summary(verrs), fields)
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}

func summary(verrs validator.ValidationErrors) string {
	var missing []string
	for _, e := range verrs {
		if e.Tag() == "required" {
			missing = append(missing, e.Field())
		}
	}
	if len(missing) == len(verrs) {
		return "Please provide all required fields: " + strings.Join(missing, ", ")
	}
	return "Validation failed"
}

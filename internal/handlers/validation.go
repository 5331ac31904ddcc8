package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/PY-Dev20/traint-5x5/internal/services"
	"github.com/go-playground/validator/v10"
)

var validate = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct tags and converts failures into field-level
// messages keyed by JSON name.
func validateRequest(req any) *services.ValidationError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return services.NewValidationError("non_field_errors", "Invalid request body")
	}

	result := &services.ValidationError{}
	for _, fe := range fieldErrors {
		result.Add(fe.Field(), fieldErrorMessage(fe))
	}
	return result
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed validation for '%s'.", fe.Tag())
	}
}

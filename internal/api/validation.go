package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// requestValidator wraps the go-playground validator, reporting fields by
// their json name
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// whitespace-only strings count as missing
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &requestValidator{validate: v}
}

// Struct validates s using its validate tags
func (v *requestValidator) Struct(s any) error {
	return v.validate.Struct(s)
}

// fieldErrors converts validation errors into a field -> message map
func fieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fields
	}

	for _, e := range validationErrs {
		switch e.Tag() {
		case "required", "notblank":
			fields[e.Field()] = fmt.Sprintf("%s is required", e.Field())
		default:
			fields[e.Field()] = fmt.Sprintf("%s is invalid", e.Field())
		}
	}

	return fields
}

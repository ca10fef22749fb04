package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(JSONTagName)
	return v
}

// JSONTagName makes validator report fields by their JSON key.
func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is returned when a payload fails shape or constraint checks.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FromValidationErrors converts validator output into FieldErrors.
func FromValidationErrors(ve validator.ValidationErrors) FieldErrors {
	out := make(FieldErrors, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// checkField validates a patch field only when the client sent it.
func checkField[T any](errs FieldErrors, field string, o Optional[T], nullable bool, tag string) FieldErrors {
	if !o.Set {
		return errs
	}
	if o.Null {
		if !nullable {
			errs = append(errs, FieldError{Field: field, Message: "may not be null"})
		}
		return errs
	}
	if tag == "" {
		return errs
	}
	if err := validate.Var(o.Value, tag); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return append(errs, FieldError{Field: field, Message: err.Error()})
		}
		for _, fe := range ve {
			errs = append(errs, FieldError{Field: field, Message: describe(fe)})
		}
	}
	return errs
}

func result(errs FieldErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

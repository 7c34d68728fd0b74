package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Text and Number are validated by their sanitized value: an empty or
	// null member fails "required" exactly like a missing one.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		t := field.Interface().(Text)
		s, _ := t.Get()
		return s
	}, Text{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		n := field.Interface().(Number)
		if f, ok := n.Get(); ok {
			return f
		}
		return nil
	}, Number{})

	return v
}

// validateStruct runs the validate tags of s and flattens failures.
func validateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Field: "body", Message: err.Error()}}
	}
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "contains":
		return fmt.Sprintf("must contain %q", fe.Param())
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

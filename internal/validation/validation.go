// Package validation builds the validator shared by response schemas and form input.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a validator that reports fields by their json/form name and compares
// decimal.Decimal fields numerically.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// FieldError is one failed rule on one field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// Errors lists every failed field.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.String()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (fe FieldError) String() string {
	switch fe.Rule {
	case "required", "notblank":
		return fe.Field + " is required"
	case "email":
		return fe.Field + " must be a valid email address"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field, fe.Param)
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field, fe.Param)
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field, fe.Param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field, fe.Param)
	case "numeric", "number":
		return fe.Field + " must contain only digits"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field, fe.Param)
	default:
		return fmt.Sprintf("%s failed %s", fe.Field, fe.Rule)
	}
}

// Convert turns validator output into Errors. Other errors are returned unchanged.
func Convert(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

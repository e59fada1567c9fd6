// Package validation checks request parameters with struct tags and
// configuration values with a fluent collector.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names (q, page_size) rather than Go names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := validate.RegisterValidation("termid", validTermID); err != nil {
		panic(err)
	}
}

// validTermID accepts identifiers that are not blank and carry no control
// characters.
func validTermID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// FieldError describes the first constraint a request violated.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s: field is required", e.Field)
	case "min", "gte":
		return fmt.Sprintf("%s: must be at least %s", e.Field, e.Param)
	case "max", "lte":
		return fmt.Sprintf("%s: must not exceed %s", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", e.Field, e.Param)
	case "termid":
		return fmt.Sprintf("%s: must be a non-blank term identifier", e.Field)
	default:
		return fmt.Sprintf("%s: validation failed (%s)", e.Field, e.Tag)
	}
}

// Struct validates v against its `validate` tags. The returned error is a
// *FieldError for the first violation, or nil.
func Struct(v any) error {
	if v == nil {
		return errors.New("request cannot be nil")
	}
	return formatValidationError(validate.Struct(v))
}

// Var validates a single value against a tag expression such as "min=1".
func Var(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: field, Tag: verrs[0].Tag(), Param: verrs[0].Param()}
	}
	return err
}

// formatValidationError converts validator errors to a FieldError
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	e := verrs[0]
	return &FieldError{Field: e.Field(), Tag: e.Tag(), Param: e.Param()}
}

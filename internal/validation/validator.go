package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	Validator = newValidator()
)

// newValidator reports struct fields by their json name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct validates s and returns the first failing field as a
// *FieldError.
func ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: verrs[0].Field(), Rule: verrs[0].Tag()}
	}
	return err
}

// ValidateMap checks data against validator tags keyed by field name. The
// first failing field, in name order, is returned.
func ValidateMap(data map[string]any, rules map[string]interface{}) error {
	failed := Validator.ValidateMap(data, rules)
	if len(failed) == 0 {
		return nil
	}

	fields := make([]string, 0, len(failed))
	for field := range failed {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return &FieldError{Field: fields[0], Rule: fmt.Sprint(rules[fields[0]])}
}

type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is invalid (%s)", e.Field, e.Rule)
}

// Message is the caller-facing text for the failure.
func (e *FieldError) Message() string {
	return "Invalid or missing " + e.Field
}

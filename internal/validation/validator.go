// Package validation wraps a shared go-playground/validator instance and turns
// its errors into short messages suitable for API responses and startup logs.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Error lists every failed field of a struct.
type Error struct {
	Fields []FieldError
}

// FieldError describes a single failed rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
	Value any
}

func (f FieldError) String() string {
	switch f.Tag {
	case "required":
		return fmt.Sprintf("%s is required", f.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", f.Field, f.Param, f.Value)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", f.Field, f.Param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", f.Field, f.Param)
	default:
		return fmt.Sprintf("%s failed %s validation", f.Field, f.Tag)
	}
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return strings.Join(msgs, "; ")
}

// ValidateStruct validates s against its `validate` tags. It returns nil or an
// *Error.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Namespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return out
}

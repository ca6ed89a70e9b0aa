package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field value")
	ErrNotFound             = errors.New("not found")
)

// ValidationError describes a record that was rejected before reaching the database.
type ValidationError struct {
	Entity  string
	Key     string
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var reasons []string
	if len(e.Missing) > 0 {
		reasons = append(reasons, fmt.Sprintf("missing %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		reasons = append(reasons, fmt.Sprintf("invalid %s", strings.Join(e.Invalid, ", ")))
	}
	key := e.Key
	if key == "" {
		key = "<no key>"
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, key, strings.Join(reasons, "; "))
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrMissingRequiredField:
		return len(e.Missing) > 0
	case ErrInvalidField:
		return len(e.Invalid) > 0
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func check(entity, key string, record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Entity: entity, Key: key}
	for _, f := range fieldErrs {
		if f.Tag() == "required" {
			verr.Missing = append(verr.Missing, f.Field())
			continue
		}
		verr.Invalid = append(verr.Invalid, f.Field())
	}
	return verr
}

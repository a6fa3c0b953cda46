package services

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError maps JSON field names to user facing messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, " "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var messages = map[string]string{
	"required": "The field '%s' is required.",
	"email":    "The field '%s' must be a valid email address.",
	"url":      "The field '%s' must be a valid URL.",
	"oneof":    "The field '%s' must be one of %s.",
	"unique":   "The field '%s' must be unique.",
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
	return v
}

func message(field, tag, param string) string {
	msg, ok := messages[tag]
	if !ok {
		return fmt.Sprintf("Field '%s' is invalid: %s", field, tag)
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, field, param)
	}
	return fmt.Sprintf(msg, field)
}

// validateStruct runs the struct tags of s. It returns nil or a
// *ValidationError carrying one message per failing field.
func validateStruct(s any) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: map[string]string{"": err.Error()}}
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = message(fe.Field(), fe.Tag(), fe.Param())
	}
	return out
}

// add records a failure for field unless one is already present.
func (e *ValidationError) add(field, tag string) *ValidationError {
	if e == nil {
		e = &ValidationError{Fields: map[string]string{}}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message(field, tag, "")
	}
	return e
}

// asError avoids returning a typed nil inside an error interface.
func (e *ValidationError) asError() error {
	if e == nil {
		return nil
	}
	return e
}

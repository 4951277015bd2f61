// Package validation runs struct-tag validation for form input before any
// request reaches the backend.
package validation

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/wave-console/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Error lists field problems in the order they were found. Messages holds
// user facing text, the first of which is what a form banner shows.
type Error struct {
	Fields   []string
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

// First returns the first message, which is what inline form errors display.
func (e *Error) First() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

func (e *Error) Unwrap() error {
	return errors.ErrValidation
}

// Add appends a problem that was found outside struct tags.
func (e *Error) Add(field, message string) {
	e.Fields = append(e.Fields, field)
	e.Messages = append(e.Messages, message)
}

// MessageFunc turns a failed tag into user facing text.
type MessageFunc func(fe validator.FieldError) string

// Struct validates v and converts tag failures with msg.
func Struct(v any, msg MessageFunc) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrapf(err, "validate")
	}

	out := &Error{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), msg(fe))
	}
	return out
}

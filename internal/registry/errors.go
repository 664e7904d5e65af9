package registry

import (
	"errors"
	"strings"
)

// Validation failures. Match with errors.Is.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidEmailFormat   = errors.New("invalid email format")
	ErrDuplicateEmail       = errors.New("duplicate email")
)

// User-facing messages shown by the alert capability.
const (
	MsgMissingRequired = "Please fill in the required fields: Name, Email and Role."
	MsgInvalidEmail    = "Invalid email!"
	MsgDuplicateEmail  = "This email already exists!"
	MsgConfirmDelete   = "Are you sure you want to delete this registration?"
)

// ValidationError describes a rejected submission.
type ValidationError struct {
	Err    error    // one of the Err* sentinels
	Fields []string // offending form fields, in form order
	Email  string   // candidate email, set for format and duplicate errors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Message returns the text to show the user.
func (e *ValidationError) Message() string {
	return AlertMessage(e)
}

// AlertMessage maps an error from Submit to the text shown to the user.
func AlertMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingRequiredField):
		return MsgMissingRequired
	case errors.Is(err, ErrInvalidEmailFormat):
		return MsgInvalidEmail
	case errors.Is(err, ErrDuplicateEmail):
		return MsgDuplicateEmail
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}

package registry

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// fieldNames maps struct fields to form field keys.
var fieldNames = map[string]string{
	"Name":  "name",
	"Email": "email",
	"Role":  "role",
}

type fieldValidator struct {
	validate *validator.Validate
}

func newFieldValidator() *fieldValidator {
	return &fieldValidator{validate: validator.New()}
}

// check reports missing required fields before a malformed email, so an
// empty email is always "missing" and never "invalid".
func (v *fieldValidator) check(f Fields) error {
	err := v.validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var missing []string
	formatBad := false
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fieldNames[fe.StructField()])
		case "contains":
			formatBad = true
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Err: ErrMissingRequiredField, Fields: missing}
	}
	if formatBad {
		return &ValidationError{Err: ErrInvalidEmailFormat, Fields: []string{"email"}, Email: f.Email}
	}
	return err
}

// Package forms holds the field sets of the client's screens and their
// validation rules. A failed validation aborts the submit before any network
// call happens.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SignIn is the sign-in screen's field set.
type SignIn struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SignUp is the registration screen's field set.
type SignUp struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Profile is the profile-edit screen's field set. The password trio is
// optional as a whole: entering a new password requires the old one, and the
// confirmation must match the new password exactly.
type Profile struct {
	Name                 string `validate:"required"`
	Email                string `validate:"required,email"`
	OldPassword          string `validate:"required_with=Password"`
	Password             string `validate:"omitempty,min=6"`
	PasswordConfirmation string `validate:"eqfield=Password"`
}

// ValidationError aggregates the per-field messages of one failed submit.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks form against its struct tags and returns a
// *ValidationError listing every failing field, or nil.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "required_with":
		return "required when changing the password"
	case "email":
		return "must be a valid e-mail address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "eqfield":
		return "must match the new password"
	default:
		return "is invalid"
	}
}

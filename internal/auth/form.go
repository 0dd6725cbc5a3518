package auth

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages shown next to invalid form fields.
const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Email is invalid"
	MsgPasswordRequired = "Password is required"
	MsgPasswordShort    = "Password must be at least 6 characters"
	MsgNameRequired     = "Name is required"
	MsgConfirmRequired  = "Please confirm your password"
	MsgConfirmMismatch  = "Passwords do not match"

	// MsgRegistered is shown on the sign-in form after a successful sign-up.
	MsgRegistered = "Account created successfully! Please sign in."
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `validate:"required,loose_email"`
	Password string `validate:"required,min=6"`
}

// RegisterForm is the sign-up form.
type RegisterForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,loose_email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// fieldOrder fixes the order in which messages are reported.
var fieldOrder = []string{"Name", "Email", "Password", "ConfirmPassword"}

func (fe FieldErrors) Error() string {
	var parts []string
	for _, f := range fieldOrder {
		if msg, ok := fe[f]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks a sign-in form.
func (f LoginForm) Validate() error {
	return fieldErrors(validate.Struct(f))
}

// Validate checks a sign-up form.
func (f RegisterForm) Validate() error {
	return fieldErrors(validate.Struct(f))
}

func fieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return MsgEmailRequired
		}
		return MsgEmailInvalid
	case "Password":
		if fe.Tag() == "required" {
			return MsgPasswordRequired
		}
		return MsgPasswordShort
	case "Name":
		return MsgNameRequired
	case "ConfirmPassword":
		if fe.Tag() == "required" {
			return MsgConfirmRequired
		}
		return MsgConfirmMismatch
	}
	return fe.Error()
}

package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired        = "is required"
	ErrInvalidEmail    = "must be a valid email address"
	ErrMinLength       = "must be at least %s characters long"
	ErrMinValue        = "must be at least %s"
	ErrMaxLength       = "must be at most %s characters long"
	ErrInvalidPassword = "must be at least 8 characters long and include at least one uppercase letter, " +
		"one lowercase letter, one number, and one special character (!@#$%^&*)"
	ErrDefaultInvalid = "is invalid"
)

var hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)

	return validator
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrInvalidEmail
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf(ErrMinLength, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "password":
		return ErrInvalidPassword
	default:
		return ErrDefaultInvalid
	}
}

// Package validation implements the signup field rules. Each rule is a
// custom go-playground/validator tag; a field is checked tag by tag so the
// first failing rule determines the message.
package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	PasswordMinLength = 8
	SpecialCharacters = `!@#$%^&*()-_=+[]{}|;:,.<>?/`
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	hasUpper        = regexp.MustCompile(`[A-Z]`)
	hasLower        = regexp.MustCompile(`[a-z]`)
	hasDigit        = regexp.MustCompile(`\d`)
	hasSpecial      = regexp.MustCompile(`[!@#$%^&*()\-_=+\[\]{}|;:,.<>?/]`)
)

type rule struct {
	tag     string
	message string
}

var (
	emailRules = []rule{
		{"required", "Email is required"},
		{"signup_email", "Email format is invalid"},
	}
	usernameRules = []rule{
		{"required", "Username is required"},
		{"signup_username", "Username must be 3-30 characters long and contain only letters, numbers, and underscores"},
	}
	passwordRules = []rule{
		{"required", "Password is required"},
		{fmt.Sprintf("min=%d", PasswordMinLength), fmt.Sprintf("Password must be at least %d characters long", PasswordMinLength)},
		{"has_upper", "Password must contain at least one uppercase letter"},
		{"has_lower", "Password must contain at least one lowercase letter"},
		{"has_digit", "Password must contain at least one digit"},
		{"has_special", "Password must contain at least one special character"},
	}
)

// FieldValidator checks signup fields. It is safe for concurrent use.
type FieldValidator struct {
	v *validator.Validate
}

// NewFieldValidator registers the signup tags on a fresh validator. It panics
// if a tag cannot be registered.
func NewFieldValidator() *FieldValidator {
	v := validator.New()
	if err := RegisterTags(v); err != nil {
		panic(err)
	}
	return &FieldValidator{v: v}
}

// RegisterTags adds the signup rule tags to v so request structs can use
// them as well.
func RegisterTags(v *validator.Validate) error {
	tags := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"signup_email", emailPattern},
		{"signup_username", usernamePattern},
		{"has_upper", hasUpper},
		{"has_lower", hasLower},
		{"has_digit", hasDigit},
		{"has_special", hasSpecial},
	}
	for _, tag := range tags {
		re := tag.re
		err := v.RegisterValidation(tag.name, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", tag.name, err)
		}
	}
	return nil
}

// Email returns the first failing reason for email, or "".
func (f *FieldValidator) Email(email string) string { return f.check(email, emailRules) }

// Username returns the first failing reason for username, or "".
func (f *FieldValidator) Username(username string) string {
	return f.check(username, usernameRules)
}

// Password returns the first failing reason for password, or "".
func (f *FieldValidator) Password(password string) string {
	return f.check(password, passwordRules)
}

// Signup runs the email, username and password checks in that order and
// returns the first failure only.
func (f *FieldValidator) Signup(email, username, password string) string {
	if reason := f.Email(email); reason != "" {
		return reason
	}
	if reason := f.Username(username); reason != "" {
		return reason
	}
	return f.Password(password)
}

func (f *FieldValidator) check(value string, rules []rule) string {
	for _, r := range rules {
		if err := f.v.Var(value, r.tag); err != nil {
			return r.message
		}
	}
	return ""
}

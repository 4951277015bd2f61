package users

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/internal/validation"
)

const (
	msgFillAllFields    = "Please fill in all fields"
	msgInvalidEmail     = "Please enter a valid email address"
	msgPasswordMismatch = "Passwords do not match"

	msgPasswordLength = "Password must be at least 8 characters long"
	msgPasswordUpper  = "Password must contain at least one uppercase letter"
	msgPasswordLower  = "Password must contain at least one lowercase letter"
	msgPasswordNumber = "Password must contain at least one number"
)

var registerOnce sync.Once

// registerRules adds the password policy tag to the shared validator.
func registerRules() {
	registerOnce.Do(func() {
		_ = validation.Validator().RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return len(PasswordProblems(fl.Field().String())) == 0
		})
	})
}

// PasswordProblems lists every policy rule pw breaks:
// - at least 8 characters long
// - contains uppercase and lowercase letters
// - contains at least one number
func PasswordProblems(pw string) []string {
	var problems []string
	if len(pw) < 8 {
		problems = append(problems, msgPasswordLength)
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)
	for _, char := range pw {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		problems = append(problems, msgPasswordUpper)
	}
	if !hasLower {
		problems = append(problems, msgPasswordLower)
	}
	if !hasNumber {
		problems = append(problems, msgPasswordNumber)
	}
	return problems
}

// ValidatePasswordStrength returns the first policy rule pw breaks.
func ValidatePasswordStrength(pw string) error {
	if problems := PasswordProblems(pw); len(problems) > 0 {
		return errors.New(problems[0])
	}
	return nil
}

// ValidateCredentials checks the login form.
func ValidateCredentials(c Credentials) error {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" || c.Password == "" {
		return singleProblem("Email", msgFillAllFields)
	}
	registerRules()
	return validation.Struct(c, message)
}

// ValidateRegistration checks the sign-up form in the order the page reports
// problems: missing fields, email format, password policy, confirmation.
func ValidateRegistration(r Registration) error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return singleProblem("Email", msgFillAllFields)
	}
	registerRules()
	if err := validation.Struct(r, message); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return singleProblem("ConfirmPassword", msgPasswordMismatch)
	}
	return nil
}

func singleProblem(field, msg string) error {
	e := &validation.Error{}
	e.Add(field, msg)
	return e
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgFillAllFields
	case "email":
		return msgInvalidEmail
	case "password":
		if problems := PasswordProblems(fe.Value().(string)); len(problems) > 0 {
			return problems[0]
		}
	}
	return fe.Field() + " is invalid"
}

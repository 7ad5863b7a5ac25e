package auth

import (
	"net/mail"
	"regexp"

	"github.com/nerdbug/user-service/internal/types"
)

// passwordPattern mirrors the signup rule: 3-30 alphanumeric characters.
var passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,30}$`)

// validateRegister checks the signup payload and returns the first failing
// rule as a ValidationError.
func validateRegister(req RegisterRequest) error {
	if req.Email == "" {
		return &types.ValidationError{Field: "email", Message: "Email address is required"}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return &types.ValidationError{Field: "email", Message: "Please provide a valid email"}
	}
	if req.Password == "" {
		return &types.ValidationError{Field: "password", Message: "Password is required"}
	}
	if !passwordPattern.MatchString(req.Password) {
		return &types.ValidationError{Field: "password", Message: "Password must be 3-30 alphanumeric characters"}
	}
	if req.FirstName == "" {
		return &types.ValidationError{Field: "firstName", Message: "First name is required"}
	}
	if req.LastName == "" {
		return &types.ValidationError{Field: "lastName", Message: "Last name is required"}
	}
	return nil
}

func validateLogin(req LoginRequest) error {
	if req.Email == "" {
		return &types.ValidationError{Field: "email", Message: "Email address is required"}
	}
	if req.Password == "" {
		return &types.ValidationError{Field: "password", Message: "Password is required"}
	}
	if !passwordPattern.MatchString(req.Password) {
		return &types.ValidationError{Field: "password", Message: "Password must be 3-30 alphanumeric characters"}
	}
	return nil
}

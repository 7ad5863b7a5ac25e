package auth

import "github.com/nerdbug/user-service/internal/types"

// RegisterRequest represents the signup request body.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is the 201 signup body. The User record is sanitized
// before it goes on the wire; the password hash is never returned.
type RegisterResponse struct {
	Msg       string     `json:"msg"`
	Signature string     `json:"signature"`
	User      types.User `json:"User"`
}

// LoginResponse is the 201 login body: a signed token only, no user payload.
type LoginResponse struct {
	Msg       string `json:"msg"`
	Signature string `json:"signature"`
}

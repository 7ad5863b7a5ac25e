package types

import "errors"

var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")
var ErrUnauthenticated = errors.New("authentication required or invalid credentials")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotImplemented = errors.New("not implemented")
var ErrInternal = errors.New("internal error")

// Token verification failures. The auth middleware maps all of these to 401.
var ErrTokenExpired = errors.New("token has expired")
var ErrInvalidSignature = errors.New("invalid token signature")
var ErrInvalidToken = errors.New("invalid token")

// ValidationError carries the first failing rule's message so handlers can
// surface it verbatim in the 400 response body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

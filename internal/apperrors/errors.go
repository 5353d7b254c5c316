// Package apperrors defines the closed set of error kinds the application
// layer may return. The delivery layer maps each kind to a transport status
// code; no other package attaches status information to errors.
package apperrors

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("email is invalid")
	ErrWeakPassword       = errors.New("password not secure")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidField       = errors.New("invalid updates")

	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token already expired")

	ErrResetTokenInvalid = errors.New("password reset token is invalid or has expired")
	ErrProviderAssertion = errors.New("invalid provider credentials")

	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("please authenticate")
)

// ValidationError carries a field-level message for malformed input. It is
// the only error kind with free-form text; everything else is a sentinel.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

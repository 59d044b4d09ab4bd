package errors

import "errors"

// Sentinel failures raised by the core. Every one of these is an
// expected, recoverable outcome; anything else surfacing at the
// boundary is treated as internal.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalid       = errors.New("invalid")
	ErrConflict      = errors.New("conflict")
	ErrWrongPassword = errors.New("wrong password")
	ErrTokenMissing  = errors.New("token missing")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrResetExpired  = errors.New("reset token expired")
	ErrInternal      = errors.New("internal")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

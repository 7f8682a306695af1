package domain

import "errors"

var (
	// ErrNotFound is returned whenever an id does not resolve to an existing
	// row, regardless of the operation.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers both unknown emails and wrong passwords so
	// login failures are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for missing, malformed, or expired session
	// tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports a request that failed field validation. The message
// names the offending fields and is safe to surface to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

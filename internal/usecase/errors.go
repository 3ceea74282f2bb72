package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrSignatureMismatch = errors.New("signature verification failed")
	ErrValidation        = errors.New("validation failed")
)

// ValidationError wraps ErrValidation with a human-readable message that
// customer/admin facing handlers surface as-is.
func ValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// GatewayError preserves the upstream payment provider's message for
// diagnostics. Mapped to a 502 at the HTTP boundary.
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway: %s: %v", e.Message, e.Err)
	}
	return "payment gateway: " + e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }

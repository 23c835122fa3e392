package core

import (
	"errors"
	"strings"
)

// Typed errors returned by Decide functions and command handlers to classify
// business rule violations.
var (
	ErrNotFound               = errors.New("entity not found")
	ErrIneligibleMember       = errors.New("member is not eligible")
	ErrCopyUnavailable        = errors.New("copy is not available")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrLimitExceeded          = errors.New("limit exceeded")
	ErrValidation             = errors.New("validation failed")
)

// DeclinedError wraps a typed error with the specific reasons a decision was
// declined.
func DeclinedError(kind error, reasons []string) error {
	if len(reasons) == 0 {
		return kind
	}

	return errors.Join(kind, errors.New(strings.Join(reasons, "; ")))
}

// Package apperrors holds the error kinds the request boundary knows how to
// translate into HTTP responses. Anything else is treated as a system error
// and surfaced as a generic 500.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

var ErrRestricted = errors.New("account is restricted")

var ErrLocked = errors.New("post is locked")

var ErrSignupClosed = errors.New("signup is not open for this event")

var ErrEmailInUse = errors.New("email already in use")

var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError lists the signup form fields that were missing or empty,
// and those whose value did not match the field's declared type.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid fields: %s", strings.Join(e.Invalid, ", ")))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}

// CapacityError means the event's maxSignups has been reached.
type CapacityError struct {
	Max int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("event is sold out (capacity %d)", e.Max)
}

// RateLimitError carries how long the caller has to wait before retrying.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}

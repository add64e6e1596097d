package usecase

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrCooldownActive        = errors.New("negotiation cooldown active")
	ErrRemoteRejected        = errors.New("rejected by transfer store")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// CooldownError reports a blocked negotiation and how long it stays blocked.
type CooldownError struct {
	PlayerID  int64
	Until     time.Time
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: player=%d retry in %ds", ErrCooldownActive, e.PlayerID, e.RetryAfterSeconds())
}

func (e *CooldownError) Unwrap() error { return ErrCooldownActive }

// RetryAfterSeconds rounds up so a client never retries early.
func (e *CooldownError) RetryAfterSeconds() int {
	if e.Remaining <= 0 {
		return 0
	}
	return int(math.Ceil(e.Remaining.Seconds()))
}

// RemoteRejectionError carries a non-zero {code, message} result from the store.
type RemoteRejectionError struct {
	Operation string
	Code      int
	Message   string
}

func (e *RemoteRejectionError) Error() string {
	return fmt.Sprintf("%s: %s code=%d message=%q", ErrRemoteRejected, e.Operation, e.Code, e.Message)
}

func (e *RemoteRejectionError) Unwrap() error { return ErrRemoteRejected }

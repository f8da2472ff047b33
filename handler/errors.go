package handler

import (
	"errors"
	"fmt"
)

// Domain failures of the booking core. Handlers translate them to HTTP
// statuses; the sweeper and tests match on them directly.
var (
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrNotOrderOwner     = errors.New("order belongs to another user")
	ErrOrderNotFound     = errors.New("order not found")
	ErrSessionStarted    = errors.New("session has already started")
	ErrNotRetriable      = errors.New("order is not awaiting payment")
	ErrDuplicateSeat     = errors.New("seat selected more than once")
	ErrPaymentInitiation = errors.New("payment initiation failed")
	ErrBadSignature      = errors.New("webhook signature mismatch")
	ErrMissingReference  = errors.New("event carries no client reference")
)

// SeatConflictError identifies the seats that were no longer free at commit
// time. The whole batch fails; nothing is persisted.
type SeatConflictError struct {
	Seats []int
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already taken: %v", e.Seats)
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the booking core. Handlers map these to HTTP codes;
// services never retry them because retrying cannot change the outcome.
var (
	ErrInvalidQuantity         = errors.New("number of tickets must be a positive integer")
	ErrEventNotBookable        = errors.New("event is not available for booking")
	ErrSoldOut                 = errors.New("not enough tickets available")
	ErrAlreadyBooked           = errors.New("an active booking already exists for this event")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrEventNotFound           = errors.New("event not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrInventoryNotFound       = errors.New("ticket inventory not found")
	ErrForbidden               = errors.New("access denied")
	ErrInvalidStatusTransition = errors.New("invalid payment status transition")
)

// SoldOutError reports a failed reservation together with the number of
// tickets still available, so callers can suggest a smaller quantity.
type SoldOutError struct {
	Remaining int
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("not enough tickets available, only %d left", e.Remaining)
}

// Is makes errors.Is(err, ErrSoldOut) match.
func (e *SoldOutError) Is(target error) bool {
	return target == ErrSoldOut
}

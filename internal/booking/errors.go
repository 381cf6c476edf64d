package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateBooking is returned when a booking already exists under
	// the requested full name.
	ErrDuplicateBooking = errors.New("an appointment with this name already exists")

	// ErrBookingNotFound is returned when no booking exists under the key.
	ErrBookingNotFound = errors.New("booking not found")
)

// MissingFieldError reports the first required field absent from a request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

package notify

import (
	"context"
	"fmt"

	"github.com/clinicops/booking-api/internal/booking"
	"github.com/clinicops/booking-api/pkg/logging"
)

const confirmationSubject = "Appointment Confirmation"

// Confirmer builds and dispatches booking confirmation emails through an
// EmailSender. It performs no retries; delivery guarantees belong to the
// provider behind the sender.
type Confirmer struct {
	sender EmailSender
	logger *logging.Logger
}

var _ booking.ConfirmationSender = (*Confirmer)(nil)

// NewConfirmer creates a confirmer backed by the given sender.
func NewConfirmer(sender EmailSender, logger *logging.Logger) *Confirmer {
	if sender == nil {
		panic("notify: email sender required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Confirmer{sender: sender, logger: logger}
}

// SendConfirmation emails the requester that their appointment is booked.
func (c *Confirmer) SendConfirmation(ctx context.Context, b *booking.Booking) error {
	if b == nil {
		return fmt.Errorf("notify: booking required")
	}
	msg := EmailMessage{
		To:      b.Email,
		ToName:  b.FullName,
		Subject: confirmationSubject,
		Body:    confirmationBody(b),
	}
	return c.sender.Send(ctx, msg)
}

func confirmationBody(b *booking.Booking) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour appointment for %s on %s at %s has been booked successfully.",
		b.FullName, b.Service, b.AppointmentDate, b.TimeSlot,
	)
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinicops/booking-api/internal/observability/metrics"
	"github.com/clinicops/booking-api/pkg/logging"
)

var bookingTracer = otel.Tracer("clinic.internal.booking")

// ConfirmationSender dispatches a booking confirmation to the requester.
// Sending is best effort: a failure never rolls back the stored record.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, b *Booking) error
}

// Result reports a booking that reached the store, along with whether the
// confirmation email went out.
type Result struct {
	Booking   *Booking
	EmailSent bool
}

// Service runs the booking intake pipeline: validate, normalize, persist
// with atomic duplicate detection, then notify. Each stage runs at most
// once per request, strictly in order; the first failure aborts the rest.
type Service struct {
	store    Store
	notifier ConfirmationSender
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewService constructs a booking service.
func NewService(store Store, notifier ConfirmationSender, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("booking: store required")
	}
	if notifier == nil {
		panic("booking: confirmation sender required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, notifier: notifier, metrics: m, logger: logger}
}

// Book processes one appointment request to a terminal outcome.
func (s *Service) Book(ctx context.Context, req *Request) (*Result, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.book")
	defer span.End()
	start := time.Now()

	if err := req.Validate(); err != nil {
		s.metrics.ObserveRequest("invalid", time.Since(start).Seconds())
		return nil, err
	}

	record := NewBooking(req)
	span.SetAttributes(
		attribute.String("clinic.service", record.Service),
		attribute.String("clinic.appointment_date", record.AppointmentDate),
	)

	if err := s.store.Create(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateBooking) {
			s.metrics.ObserveRequest("duplicate", time.Since(start).Seconds())
			return nil, err
		}
		span.RecordError(err)
		s.metrics.ObserveRequest("store_error", time.Since(start).Seconds())
		return nil, fmt.Errorf("booking: store write: %w", err)
	}

	result := &Result{Booking: record, EmailSent: true}
	if err := s.notifier.SendConfirmation(ctx, record); err != nil {
		// The booking stands; the caller is told the email did not go out.
		s.logger.Error("confirmation email failed", "error", err, "email", record.Email)
		s.metrics.ObserveEmail("failed")
		result.EmailSent = false
	} else {
		s.metrics.ObserveEmail("sent")
	}

	s.metrics.ObserveRequest("booked", time.Since(start).Seconds())
	s.logger.Info("appointment booked",
		"service", record.Service,
		"appointment_date", record.AppointmentDate,
		"time_slot", record.TimeSlot,
		"email_sent", result.EmailSent,
	)
	return result, nil
}

package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicops/booking-api/pkg/logging"
)

type fakeConfirmer struct {
	sent []*Booking
	err  error
}

func (f *fakeConfirmer) SendConfirmation(ctx context.Context, b *Booking) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, b)
	return nil
}

type failingStore struct {
	err error
}

func (s *failingStore) Get(ctx context.Context, fullName string) (*Booking, error) {
	return nil, ErrBookingNotFound
}

func (s *failingStore) Create(ctx context.Context, b *Booking) error {
	return s.err
}

func TestServiceBookSuccess(t *testing.T) {
	store := NewMemoryStore()
	confirmer := &fakeConfirmer{}
	svc := NewService(store, confirmer, nil, logging.Default())

	result, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if !result.EmailSent {
		t.Error("expected email sent")
	}
	if result.Booking.TimeSlot != "9 AM" {
		t.Errorf("expected normalized slot, got %q", result.Booking.TimeSlot)
	}

	stored, err := store.Get(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("expected record stored, got %v", err)
	}
	if stored.TimeSlot != "9 AM" {
		t.Errorf("expected stored slot 9 AM, got %q", stored.TimeSlot)
	}
	if len(confirmer.sent) != 1 {
		t.Fatalf("expected one confirmation, got %d", len(confirmer.sent))
	}
}

func TestServiceBookInvalidRequestSkipsStore(t *testing.T) {
	store := NewMemoryStore()
	confirmer := &fakeConfirmer{}
	svc := NewService(store, confirmer, nil, logging.Default())

	req := validRequest()
	req.EmergencyNumber = ""

	_, err := svc.Book(context.Background(), req)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "emergencyNumber" {
		t.Errorf("expected emergencyNumber, got %q", missing.Field)
	}

	if _, err := store.Get(context.Background(), "Jane Doe"); !errors.Is(err, ErrBookingNotFound) {
		t.Error("invalid request must not write to the store")
	}
	if len(confirmer.sent) != 0 {
		t.Error("invalid request must not send email")
	}
}

func TestServiceBookDuplicateLeavesRecordUnchanged(t *testing.T) {
	store := NewMemoryStore()
	confirmer := &fakeConfirmer{}
	svc := NewService(store, confirmer, nil, logging.Default())
	ctx := context.Background()

	if _, err := svc.Book(ctx, validRequest()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	req := validRequest()
	req.Service = "Checkup"
	_, err := svc.Book(ctx, req)
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}

	stored, _ := store.Get(ctx, "Jane Doe")
	if stored.Service != "Vaccination" {
		t.Errorf("duplicate booking must not modify the record, got %q", stored.Service)
	}
	if len(confirmer.sent) != 1 {
		t.Errorf("duplicate booking must not send a second email, got %d", len(confirmer.sent))
	}
}

func TestServiceBookStoreFailure(t *testing.T) {
	confirmer := &fakeConfirmer{}
	svc := NewService(&failingStore{err: errors.New("dynamo unreachable")}, confirmer, nil, logging.Default())

	_, err := svc.Book(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if errors.Is(err, ErrDuplicateBooking) {
		t.Fatal("store outage must not be reported as duplicate")
	}
	if len(confirmer.sent) != 0 {
		t.Error("no confirmation may be sent when the write fails")
	}
}

func TestServiceBookNotifyFailureStillBooks(t *testing.T) {
	store := NewMemoryStore()
	confirmer := &fakeConfirmer{err: errors.New("smtp down")}
	svc := NewService(store, confirmer, nil, logging.Default())

	result, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("notify failure must not fail the booking, got %v", err)
	}
	if result.EmailSent {
		t.Error("expected EmailSent=false when the sender errors")
	}

	if _, err := store.Get(context.Background(), "Jane Doe"); err != nil {
		t.Errorf("record must remain stored after notify failure, got %v", err)
	}
}

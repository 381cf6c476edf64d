package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinicops/booking-api/pkg/logging"
)

func newTestHandler(t *testing.T) (*Handler, *MemoryStore, *fakeConfirmer) {
	t.Helper()
	store := NewMemoryStore()
	confirmer := &fakeConfirmer{}
	svc := NewService(store, confirmer, nil, logging.Default())
	return NewHandler(svc, logging.Default()), store, confirmer
}

func postBooking(t *testing.T, h *Handler, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/book-appointment", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.BookAppointment(w, req)
	return w
}

func scenarioPayload() map[string]string {
	return map[string]string{
		"fullName":        "Jane Doe",
		"email":           "jane@x.com",
		"contactNumber":   "555-1234",
		"service":         "Vaccination",
		"appointmentDate": "2024-05-01",
		"dateOfBirth":     "1990-01-01",
		"timeSlot":        "09:00",
		"emergencyName":   "John Doe",
		"emergencyNumber": "555-5678",
	}
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Message
}

func TestBookAppointment_Success(t *testing.T) {
	h, store, confirmer := newTestHandler(t)

	w := postBooking(t, h, scenarioPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if msg := decodeMessage(t, w); msg != "Appointment booked successfully and email sent" {
		t.Errorf("unexpected message %q", msg)
	}

	stored, err := store.Get(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("expected record stored, got %v", err)
	}
	if stored.TimeSlot != "9 AM" {
		t.Errorf("expected stored slot 9 AM, got %q", stored.TimeSlot)
	}

	if len(confirmer.sent) != 1 || confirmer.sent[0].Email != "jane@x.com" {
		t.Fatalf("expected one confirmation to jane@x.com, got %+v", confirmer.sent)
	}
}

func TestBookAppointment_DuplicateName(t *testing.T) {
	h, store, _ := newTestHandler(t)

	if w := postBooking(t, h, scenarioPayload()); w.Code != http.StatusOK {
		t.Fatalf("first booking expected 200, got %d", w.Code)
	}

	w := postBooking(t, h, scenarioPayload())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if msg := decodeMessage(t, w); msg != "An appointment with this name already exists" {
		t.Errorf("unexpected message %q", msg)
	}

	if _, err := store.Get(context.Background(), "Jane Doe"); err != nil {
		t.Errorf("original record must survive the duplicate attempt, got %v", err)
	}
}

func TestBookAppointment_MissingField(t *testing.T) {
	h, store, _ := newTestHandler(t)

	payload := scenarioPayload()
	delete(payload, "emergencyNumber")

	w := postBooking(t, h, payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if msg := decodeMessage(t, w); msg != "Missing field: emergencyNumber" {
		t.Errorf("unexpected message %q", msg)
	}

	if _, err := store.Get(context.Background(), "Jane Doe"); !errors.Is(err, ErrBookingNotFound) {
		t.Error("missing field must not create a record")
	}
}

func TestBookAppointment_InvalidJSON(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/book-appointment", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.BookAppointment(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if msg := decodeMessage(t, w); msg != "Missing request body" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestBookAppointment_StoreFailure(t *testing.T) {
	svc := NewService(&failingStore{err: errors.New("dynamo unreachable")}, &fakeConfirmer{}, nil, logging.Default())
	h := NewHandler(svc, logging.Default())

	w := postBooking(t, h, scenarioPayload())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	var resp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Internal server error" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Error == "" {
		t.Error("expected diagnostic in error field")
	}
}

func TestBookAppointment_NotifyFailureIsPartialSuccess(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, &fakeConfirmer{err: errors.New("provider down")}, nil, logging.Default())
	h := NewHandler(svc, logging.Default())

	w := postBooking(t, h, scenarioPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for booked-but-not-notified, got %d", w.Code)
	}
	if msg := decodeMessage(t, w); msg != "Appointment booked successfully but confirmation email failed to send" {
		t.Errorf("unexpected message %q", msg)
	}

	if _, err := store.Get(context.Background(), "Jane Doe"); err != nil {
		t.Errorf("record must exist despite notify failure, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/clinicops/booking-api/pkg/logging"
)

// Handler handles HTTP requests for appointment bookings
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new booking handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// BookAppointment handles POST /book-appointment requests
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Missing request body"})
		return
	}

	result, err := h.service.Book(r.Context(), &req)
	if err != nil {
		var missing *MissingFieldError
		switch {
		case errors.As(err, &missing):
			writeJSON(w, http.StatusBadRequest, messageResponse{
				Message: fmt.Sprintf("Missing field: %s", missing.Field),
			})
		case errors.Is(err, ErrDuplicateBooking):
			writeJSON(w, http.StatusBadRequest, messageResponse{
				Message: "An appointment with this name already exists",
			})
		default:
			h.logger.Error("booking pipeline failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, messageResponse{
				Message: "Internal server error",
				Error:   err.Error(),
			})
		}
		return
	}

	msg := "Appointment booked successfully and email sent"
	if !result.EmailSent {
		msg = "Appointment booked successfully but confirmation email failed to send"
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

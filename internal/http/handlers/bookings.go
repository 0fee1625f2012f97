// Package handlers holds the staff-facing HTTP handlers for the booking
// proxy.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/barkwell/frontdesk/internal/booking"
	"github.com/barkwell/frontdesk/internal/catalog"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// HistoryMarker flags locally recorded bookings as checked in.
type HistoryMarker interface {
	MarkCheckedIn(ctx context.Context, appointmentID string) error
}

// BookingsHandler serves booking creation and check-in endpoints.
type BookingsHandler struct {
	service *booking.Service
	history HistoryMarker
	logger  *logging.Logger
}

// NewBookingsHandler creates the bookings handler. history may be nil.
func NewBookingsHandler(service *booking.Service, history HistoryMarker, logger *logging.Logger) *BookingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingsHandler{service: service, history: history, logger: logger}
}

// bookingRequestBody is the wire shape of a staff booking request.
type bookingRequestBody struct {
	Family     string     `json:"family,omitempty"`
	ServiceIDs []string   `json:"service_ids"`
	Start      time.Time  `json:"start"`
	End        *time.Time `json:"end,omitempty"`
	PetID      string     `json:"pet_id"`
	ClientID   string     `json:"client_id,omitempty"`
	ResourceID string     `json:"resource_id,omitempty"`
}

type bookingResponseBody struct {
	AppointmentID  string               `json:"appointment_id"`
	CheckedIn      bool                 `json:"checked_in"`
	CheckInWarning string               `json:"check_in_warning,omitempty"`
	Appointment    *booking.Appointment `json:"appointment"`
}

// Create handles POST /api/bookings.
func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body bookingRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.PetID == "" {
		writeError(w, http.StatusBadRequest, "pet_id is required")
		return
	}
	if body.Start.IsZero() {
		writeError(w, http.StatusBadRequest, "start is required")
		return
	}

	req := booking.Request{
		Family:     catalog.ParseFamily(body.Family),
		ServiceIDs: body.ServiceIDs,
		Start:      body.Start,
		End:        body.End,
		PetID:      body.PetID,
		ClientID:   body.ClientID,
		ResourceID: body.ResourceID,
	}

	res, err := h.service.Book(r.Context(), req)
	if err != nil {
		var ve *booking.UpstreamValidationError
		switch {
		case errors.Is(err, booking.ErrMissingServiceSelection):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &ve):
			writeError(w, http.StatusBadGateway, ve.Error())
		default:
			h.logger.Error("booking failed", "error", err)
			writeError(w, http.StatusInternalServerError, "booking failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, bookingResponseBody{
		AppointmentID:  res.AppointmentID,
		CheckedIn:      res.CheckedIn,
		CheckInWarning: res.CheckInWarning,
		Appointment:    res.Appointment,
	})
}

// CheckIn handles POST /api/appointments/{appointmentID}/checkin.
func (h *BookingsHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")
	if appointmentID == "" {
		writeError(w, http.StatusBadRequest, "appointment id is required")
		return
	}
	if err := h.service.CheckIn(r.Context(), appointmentID); err != nil {
		h.logger.Warn("manual check-in failed", "appointment_id", appointmentID, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if h.history != nil {
		if err := h.history.MarkCheckedIn(r.Context(), appointmentID); err != nil {
			h.logger.Warn("failed to flag history row checked in", "appointment_id", appointmentID, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointment_id": appointmentID, "checked_in": true})
}

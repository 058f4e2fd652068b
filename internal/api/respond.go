package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/alexanders-dream/compassionate-care-api/internal/appointment"
	"github.com/alexanders-dream/compassionate-care-api/internal/content"
	"github.com/alexanders-dream/compassionate-care-api/internal/forms"
	"github.com/alexanders-dream/compassionate-care-api/internal/intake"
	redisclient "github.com/alexanders-dream/compassionate-care-api/internal/redis"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeServiceError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	// Not found
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, intake.ErrVisitRequestNotFound):
		writeError(w, http.StatusNotFound, "visit_request_not_found", err.Error())
	case errors.Is(err, intake.ErrReferralNotFound):
		writeError(w, http.StatusNotFound, "referral_not_found", err.Error())
	case errors.Is(err, content.ErrBlogPostNotFound):
		writeError(w, http.StatusNotFound, "blog_post_not_found", err.Error())
	case errors.Is(err, content.ErrTeamMemberNotFound):
		writeError(w, http.StatusNotFound, "team_member_not_found", err.Error())
	case errors.Is(err, content.ErrPracticeServiceNotFound):
		writeError(w, http.StatusNotFound, "service_not_found", err.Error())
	case errors.Is(err, content.ErrInsuranceProviderNotFound):
		writeError(w, http.StatusNotFound, "insurance_provider_not_found", err.Error())
	case errors.Is(err, content.ErrTestimonialNotFound):
		writeError(w, http.StatusNotFound, "testimonial_not_found", err.Error())
	case errors.Is(err, forms.ErrFormNotFound):
		writeError(w, http.StatusNotFound, "form_not_found", err.Error())

	// Booking conflicts
	case errors.Is(err, appointment.ErrSlotConflict):
		writeError(w, http.StatusConflict, "slot_conflict", err.Error())
	case errors.Is(err, appointment.ErrNoSlotsAvailable):
		writeError(w, http.StatusConflict, "no_slots_available", err.Error())
	case errors.Is(err, appointment.ErrAgendaBusy),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "agenda_busy", "another booking is in progress, please retry shortly")
	case errors.Is(err, appointment.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, content.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, "duplicate_slug", err.Error())

	// Bad input
	case errors.Is(err, appointment.ErrInvalidDate),
		errors.Is(err, appointment.ErrInvalidTime),
		errors.Is(err, appointment.ErrInvalidDuration),
		errors.Is(err, appointment.ErrInvalidStatus),
		errors.Is(err, intake.ErrInvalidStatus),
		errors.Is(err, intake.ErrInvalidUrgency),
		errors.Is(err, intake.ErrInvalidDate),
		errors.Is(err, content.ErrMissingTitle),
		errors.Is(err, content.ErrMissingName),
		errors.Is(err, content.ErrMissingQuote),
		errors.Is(err, content.ErrInvalidRating),
		errors.Is(err, forms.ErrMissingFormName),
		errors.Is(err, forms.ErrMissingFieldName),
		errors.Is(err, forms.ErrInvalidFieldType),
		errors.Is(err, forms.ErrMissingOptions):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

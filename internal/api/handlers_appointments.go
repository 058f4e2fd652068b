package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/alexanders-dream/compassionate-care-api/internal/appointment"
)

// decodeValid parses the JSON body into dst and runs struct validation,
// writing the error response itself on failure.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return false
	}
	return true
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func createAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if !decodeValid(w, r, &req) {
			return
		}

		appt, err := svc.Schedule(r.Context(), appointment.ScheduleInput{
			PatientName:     req.PatientName,
			PatientPhone:    req.PatientPhone,
			ClinicianName:   req.ClinicianName,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Reason:          req.Reason,
			Notes:           req.Notes,
			AutoAssign:      req.AutoAssign,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func listAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := appointment.ListFilter{
			Clinician: r.URL.Query().Get("clinician"),
			Date:      r.URL.Query().Get("date"),
			Status:    appointment.Status(r.URL.Query().Get("status")),
			Limit:     queryInt(r, "limit", 0),
			Offset:    queryInt(r, "offset", 0),
		}

		appts, err := svc.List(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func getAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		appt, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func updateAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req UpdateAppointmentRequest
		if !decodeValid(w, r, &req) {
			return
		}

		appt, err := svc.Reschedule(r.Context(), id, appointment.RescheduleInput{
			PatientName:     req.PatientName,
			PatientPhone:    req.PatientPhone,
			ClinicianName:   req.ClinicianName,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Reason:          req.Reason,
			Notes:           req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func updateAppointmentStatusHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req UpdateStatusRequest
		if !decodeValid(w, r, &req) {
			return
		}

		appt, err := svc.SetStatus(r.Context(), id, appointment.Status(req.Status))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func deleteAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Availability queries backing the dashboard's time picker and calendar.

func availableSlotsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinician := r.URL.Query().Get("clinician")
		date := r.URL.Query().Get("date")
		if clinician == "" || date == "" {
			writeError(w, http.StatusBadRequest, "missing_query", "clinician and date are required")
			return
		}
		duration := queryInt(r, "duration", 30)
		excludeID := r.URL.Query().Get("exclude_id")

		slots, err := svc.AvailableSlots(r.Context(), clinician, date, duration, excludeID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"clinician": clinician,
			"date":      date,
			"duration":  duration,
			"slots":     slots,
		})
	}
}

func fullyBookedDatesHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinician := r.URL.Query().Get("clinician")
		if clinician == "" {
			writeError(w, http.StatusBadRequest, "missing_query", "clinician is required")
			return
		}

		dates, err := svc.FullyBookedDates(r.Context(), clinician, r.URL.Query().Get("exclude_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"clinician": clinician,
			"dates":     dates,
		})
	}
}

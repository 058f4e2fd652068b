package api

import (
	"net/http"

	"github.com/alexanders-dream/compassionate-care-api/internal/intake"
)

func submitVisitRequestHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateVisitRequestRequest
		if !decodeValid(w, r, &req) {
			return
		}

		v, err := svc.SubmitVisitRequest(r.Context(), intake.VisitRequest{
			PatientName:        req.PatientName,
			Email:              req.Email,
			Phone:              req.Phone,
			PreferredClinician: req.PreferredClinician,
			PreferredDate:      req.PreferredDate,
			Reason:             req.Reason,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toVisitRequestResponse(v))
	}
}

func listVisitRequestsHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := intake.VisitRequestStatus(r.URL.Query().Get("status"))

		reqs, err := svc.ListVisitRequests(r.Context(), status, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]VisitRequestResponse, 0, len(reqs))
		for i := range reqs {
			out = append(out, toVisitRequestResponse(&reqs[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getVisitRequestHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		v, err := svc.GetVisitRequest(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVisitRequestResponse(v))
	}
}

func updateVisitRequestStatusHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req UpdateStatusRequest
		if !decodeValid(w, r, &req) {
			return
		}

		v, err := svc.SetVisitRequestStatus(r.Context(), id, intake.VisitRequestStatus(req.Status))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVisitRequestResponse(v))
	}
}

func deleteVisitRequestHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteVisitRequest(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func createReferralHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateReferralRequest
		if !decodeValid(w, r, &req) {
			return
		}

		ref, err := svc.CreateReferral(r.Context(), intake.Referral{
			ReferringProvider: req.ReferringProvider,
			Practice:          req.Practice,
			Phone:             req.Phone,
			Fax:               req.Fax,
			PatientName:       req.PatientName,
			PatientDOB:        req.PatientDOB,
			Urgency:           intake.Urgency(req.Urgency),
			Reason:            req.Reason,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toReferralResponse(ref))
	}
}

func listReferralsHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := intake.ReferralStatus(r.URL.Query().Get("status"))

		refs, err := svc.ListReferrals(r.Context(), status, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]ReferralResponse, 0, len(refs))
		for i := range refs {
			out = append(out, toReferralResponse(&refs[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getReferralHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		ref, err := svc.GetReferral(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toReferralResponse(ref))
	}
}

func updateReferralStatusHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req UpdateStatusRequest
		if !decodeValid(w, r, &req) {
			return
		}

		ref, err := svc.SetReferralStatus(r.Context(), id, intake.ReferralStatus(req.Status))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toReferralResponse(ref))
	}
}

func deleteReferralHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteReferral(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

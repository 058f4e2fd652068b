package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanders-dream/compassionate-care-api/internal/forms"
)

func getFormConfigHandler(svc *forms.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.Get(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toFormConfigResponse(cfg))
	}
}

func listFormConfigsHandler(svc *forms.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configs, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]FormConfigResponse, 0, len(configs))
		for i := range configs {
			out = append(out, toFormConfigResponse(&configs[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func saveFormConfigHandler(svc *forms.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FormConfigRequest
		if !decodeValid(w, r, &req) {
			return
		}

		cfg, err := svc.Save(r.Context(), forms.FormConfig{
			FormName: chi.URLParam(r, "name"),
			Fields:   req.Fields,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toFormConfigResponse(cfg))
	}
}

func deleteFormConfigHandler(svc *forms.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

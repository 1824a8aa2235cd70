package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/go-chi/chi/v5"
)

const maxFormBytes = 1 << 20

// SubmitApplication handles POST /applications
// Accepts a JSON body or the HTML join form encoding.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var in model.ApplicationInput
	if isForm(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := parseForm(r); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "invalid form body")
			return
		}
		in = model.ApplicationInputFromForm(r.PostForm)
	} else {
		// Unknown fields are tolerated; the join form has grown over time.
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	app, err := h.applications.SubmitApplication(r.Context(), in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "Application submitted successfully!", map[string]any{
		"application_id": app.ID,
	})
}

// ListApplications handles GET /admin/applications?status=pending
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.ListApplications(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", apps)
}

// GetApplication handles GET /admin/applications/{id}
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.applications.GetApplication(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", app)
}

// ApproveApplication handles POST /admin/applications/{id}/approve
func (h *Handler) ApproveApplication(w http.ResponseWriter, r *http.Request) {
	h.decideApplication(w, r, true)
}

// RejectApplication handles POST /admin/applications/{id}/reject
func (h *Handler) RejectApplication(w http.ResponseWriter, r *http.Request) {
	h.decideApplication(w, r, false)
}

func (h *Handler) decideApplication(w http.ResponseWriter, r *http.Request, approve bool) {
	app, err := h.applications.ReviewApplication(r.Context(), chi.URLParam(r, "id"), approve)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Application "+string(app.Status), app)
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormBytes)
	}
	return r.ParseForm()
}

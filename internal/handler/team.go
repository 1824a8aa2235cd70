package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
)

// ListTeam handles GET /team
func (h *Handler) ListTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.team.ListTeam(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", team)
}

// ListAllTeam handles GET /admin/team
func (h *Handler) ListAllTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.team.ListAllTeam(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", team)
}

// AddTeamMember handles POST /admin/team
func (h *Handler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	var in model.TeamMemberInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	m, err := h.team.AddTeamMember(r.Context(), in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "Team member added", m)
}

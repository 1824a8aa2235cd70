package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
)

// Me handles GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	member, _ := MemberFrom(r.Context())
	writeOK(w, http.StatusOK, "", member)
}

// CompleteProfile handles PUT /me/profile
// Creates the caller's member profile on first use and updates it afterwards.
func (h *Handler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	subject, _ := SubjectFrom(r.Context())

	var in model.ProfileInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	member, err := h.members.CompleteProfile(r.Context(), subject, in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Profile saved", member)
}

// ListMyBookings handles GET /me/bookings
func (h *Handler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	member, _ := MemberFrom(r.Context())

	bookings, err := h.bookings.ListMemberBookings(r.Context(), member.ID)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", bookings)
}

package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/go-chi/chi/v5"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

type setMembershipRequest struct {
	IsCommunityMember bool `json:"is_community_member"`
}

// Dashboard handles GET /admin/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.admin.Dashboard(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", d)
}

// ListAllEvents handles GET /admin/events
func (h *Handler) ListAllEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListAllEvents(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", events)
}

// CreateEvent handles POST /admin/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	member, _ := MemberFrom(r.Context())

	var in model.CreateEventInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(r.Context(), member.ID, in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "Event created successfully!", event)
}

// UpdateEventStatus handles PATCH /admin/events/{id}/status
func (h *Handler) UpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.UpdateEventStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Event status updated", event)
}

// ListEventBookings handles GET /admin/events/{id}/bookings
func (h *Handler) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.events.ListEventBookings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", bookings)
}

// MarkAttended handles POST /admin/events/{id}/attendance/{memberID}
func (h *Handler) MarkAttended(w http.ResponseWriter, r *http.Request) {
	err := h.bookings.MarkAttended(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "memberID"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Attendance recorded", nil)
}

// SweepExpiredEvents handles POST /admin/events/sweep
func (h *Handler) SweepExpiredEvents(w http.ResponseWriter, r *http.Request) {
	n, err := h.sweeper.CleanExpiredEvents(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", map[string]int64{"affected": n})
}

// ListMembers handles GET /admin/members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.admin.ListMembers(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", members)
}

// SetMembership handles PATCH /admin/members/{id}/membership
func (h *Handler) SetMembership(w http.ResponseWriter, r *http.Request) {
	var req setMembershipRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.admin.SetMembership(r.Context(), chi.URLParam(r, "id"), req.IsCommunityMember); err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Membership updated", req)
}

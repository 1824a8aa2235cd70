package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListEvents handles GET /events
// Returns upcoming events still open for booking with their spots remaining.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListUpcomingEvents(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", events)
}

// GetEvent handles GET /events/{id}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", event)
}

// BookEvent handles POST /events/{id}/book
// Books the event for the acting member.
func (h *Handler) BookEvent(w http.ResponseWriter, r *http.Request) {
	member, _ := MemberFrom(r.Context())

	booking, err := h.bookings.BookEvent(r.Context(), member.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "Event booked successfully!", map[string]any{
		"booking_id": booking.ID,
		"booking":    booking,
	})
}

// CancelBooking handles POST /events/{id}/cancel
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	member, _ := MemberFrom(r.Context())

	if err := h.bookings.CancelBooking(r.Context(), member.ID, chi.URLParam(r, "id")); err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Booking cancelled", nil)
}

package model

import "time"

// BookingStatus is the state of a member's reservation.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingAttended  BookingStatus = "attended"
)

// IsActive reports whether the booking holds (or may hold) a place.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking is a member's reservation against an event, unique per (event, member).
type Booking struct {
	ID       string        `json:"id"`
	EventID  string        `json:"event_id"`
	MemberID string        `json:"member_id"`
	Status   BookingStatus `json:"status"`
	BookedAt time.Time     `json:"booked_at"`
	Notes    string        `json:"notes"`
}

// MemberBooking is a booking joined with the event it targets.
type MemberBooking struct {
	Booking
	EventTitle    string      `json:"event_title"`
	EventDateTime time.Time   `json:"event_date_time"`
	EventStatus   EventStatus `json:"event_status"`
}

// RecentBooking is a booking joined with member and event names, for the dashboard.
type RecentBooking struct {
	Booking
	MemberName string `json:"member_name"`
	EventTitle string `json:"event_title"`
}

// BookingAction says how a successful booking is recorded.
type BookingAction int

const (
	// BookingInsert creates a new row.
	BookingInsert BookingAction = iota + 1
	// BookingReinstate flips the member's cancelled row back to confirmed.
	BookingReinstate
)

func (a BookingAction) String() string {
	switch a {
	case BookingInsert:
		return "insert"
	case BookingReinstate:
		return "reinstate"
	}
	return "unknown"
}

// PlanBooking decides how to record a booking given the member's existing
// row for the event (nil when there is none). The (event, member) pair is
// unique, so a cancelled row is reused rather than a second row inserted.
// Any non-cancelled row, attended included, means the member already has
// the booking.
func PlanBooking(existing *Booking) (BookingAction, error) {
	if existing == nil {
		return BookingInsert, nil
	}
	if existing.Status == BookingCancelled {
		return BookingReinstate, nil
	}
	return 0, ErrAlreadyBooked
}

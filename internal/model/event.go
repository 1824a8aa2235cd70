package model

import (
	"fmt"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// eventTransitions lists the forward moves allowed from each status.
// Completed is terminal.
var eventTransitions = map[EventStatus][]EventStatus{
	EventUpcoming:  {EventOngoing, EventCancelled},
	EventOngoing:   {EventCompleted},
	EventCancelled: {EventCompleted},
}

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventUpcoming, EventOngoing, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next keeps the lifecycle monotonic.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EventType classifies an event.
type EventType string

const (
	EventWorkshop   EventType = "workshop"
	EventMeetup     EventType = "meetup"
	EventSeminar    EventType = "seminar"
	EventConference EventType = "conference"
	EventNetworking EventType = "networking"
	EventTraining   EventType = "training"
	EventOther      EventType = "other"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventWorkshop, EventMeetup, EventSeminar, EventConference,
		EventNetworking, EventTraining, EventOther:
		return true
	}
	return false
}

// Event is a schedulable activity with an optional capacity and a booking deadline.
type Event struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	EventType       EventType   `json:"event_type"`
	DateTime        time.Time   `json:"date_time"`
	Deadline        time.Time   `json:"deadline"`
	Location        string      `json:"location"`
	IsOnline        bool        `json:"is_online"`
	MaxParticipants *int        `json:"max_participants"`
	Price           float64     `json:"price"`
	Requirements    string      `json:"requirements"`
	Status          EventStatus `json:"status"`
	CreatedBy       *string     `json:"created_by,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// IsExpired reports whether the booking deadline has passed.
func (e *Event) IsExpired(now time.Time) bool {
	return now.After(e.Deadline)
}

// SpotsRemaining returns the free places given the number of confirmed
// bookings, floored at zero. ok is false for events without a capacity.
func (e *Event) SpotsRemaining(confirmed int) (spots int, ok bool) {
	if e.MaxParticipants == nil {
		return 0, false
	}
	return max(0, *e.MaxParticipants-confirmed), true
}

// IsFull is only ever true for events with a capacity.
func (e *Event) IsFull(confirmed int) bool {
	spots, ok := e.SpotsRemaining(confirmed)
	return ok && spots == 0
}

// CheckBookable returns nil when a new booking may be taken, or an error
// wrapping ErrNotBookable naming the first reason it may not.
func (e *Event) CheckBookable(now time.Time, confirmed int) error {
	switch {
	case e.IsExpired(now):
		return fmt.Errorf("%w: booking deadline has passed", ErrNotBookable)
	case e.IsFull(confirmed):
		return fmt.Errorf("%w: event is full", ErrNotBookable)
	case e.Status != EventUpcoming:
		return fmt.Errorf("%w: event is %s", ErrNotBookable, e.Status)
	}
	return nil
}

// CanBook reports whether CheckBookable passes.
func (e *Event) CanBook(now time.Time, confirmed int) bool {
	return e.CheckBookable(now, confirmed) == nil
}

// EventListing is an event together with its live booking state.
type EventListing struct {
	Event
	ConfirmedCount int  `json:"confirmed_count"`
	SpotsRemaining *int `json:"spots_remaining"`
	IsFull         bool `json:"is_full"`
	IsExpired      bool `json:"is_expired"`
	Bookable       bool `json:"bookable"`
}

// NewEventListing derives the listing view of e at now.
func NewEventListing(e Event, confirmed int, now time.Time) EventListing {
	l := EventListing{
		Event:          e,
		ConfirmedCount: confirmed,
		IsFull:         e.IsFull(confirmed),
		IsExpired:      e.IsExpired(now),
		Bookable:       e.CanBook(now, confirmed),
	}
	if spots, ok := e.SpotsRemaining(confirmed); ok {
		l.SpotsRemaining = &spots
	}
	return l
}

// CreateEventInput is the payload for creating a new event.
type CreateEventInput struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventType       EventType `json:"event_type"`
	DateTime        time.Time `json:"date_time"`
	Deadline        time.Time `json:"deadline"`
	Location        string    `json:"location"`
	IsOnline        bool      `json:"is_online"`
	MaxParticipants *int      `json:"max_participants"`
	Price           float64   `json:"price"`
	Requirements    string    `json:"requirements"`
}

// Normalize trims the input, applies defaults and validates it.
// A zero max_participants means unlimited.
func (in CreateEventInput) Normalize() (CreateEventInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Requirements = strings.TrimSpace(in.Requirements)
	if in.EventType == "" {
		in.EventType = EventMeetup
	}
	if in.MaxParticipants != nil && *in.MaxParticipants == 0 {
		in.MaxParticipants = nil
	}

	switch {
	case in.Title == "":
		return in, invalid("title", "is required")
	case !in.EventType.Valid():
		return in, invalid("event_type", "is not a known event type")
	case in.DateTime.IsZero():
		return in, invalid("date_time", "is required")
	case in.Deadline.IsZero():
		return in, invalid("deadline", "is required")
	case in.Deadline.After(in.DateTime):
		return in, invalid("deadline", "must not be after the event start")
	case in.Location == "":
		return in, invalid("location", "is required")
	case in.MaxParticipants != nil && *in.MaxParticipants < 0:
		return in, invalid("max_participants", "must be positive or empty")
	case in.Price < 0:
		return in, invalid("price", "must not be negative")
	}
	if err := checkLengths(
		fieldLimit{"title", in.Title, 200},
		fieldLimit{"location", in.Location, 300},
	); err != nil {
		return in, err
	}
	return in, nil
}

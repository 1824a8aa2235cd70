package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/Shivanand-hulikatti/community-hub/internal/observability"
	"github.com/Shivanand-hulikatti/community-hub/internal/repository"
	"go.opentelemetry.io/otel/attribute"
)

// EventService orchestrates event-related business operations.
type EventService struct {
	members  MemberStore
	events   EventStore
	bookings BookingStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(members MemberStore, events EventStore, bookings BookingStore, logger *slog.Logger) *EventService {
	return &EventService{members: members, events: events, bookings: bookings, logger: logger, now: time.Now}
}

// CreateEvent validates the input and stores a new upcoming event. Only
// admins may create events.
func (s *EventService) CreateEvent(ctx context.Context, creatorID string, in model.CreateEventInput) (event *model.Event, err error) {
	ctx, span := observability.StartSpan(ctx, "event.CreateEvent", attribute.String("member.id", creatorID))
	defer func() { observability.EndSpan(span, err) }()

	if !validID(creatorID) {
		return nil, fail(Forbidden, "Access denied. Admin privileges required.", nil)
	}
	creator, err := s.members.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fail(Forbidden, "Access denied. User profile not found.", err)
		}
		return nil, operationFailed(ctx, s.logger, "CreateEvent", "Could not create the event", err)
	}
	if !creator.IsAdmin {
		return nil, fail(Forbidden, "Access denied. Admin privileges required.", nil)
	}

	in, err = in.Normalize()
	if err != nil {
		return nil, fail(InvalidInput, err.Error(), err)
	}

	event, err = s.events.Create(ctx, in, creator.ID, s.now())
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "CreateEvent", "Could not create the event", err,
			slog.String("member_id", creatorID))
	}
	s.logger.InfoContext(ctx, "event created",
		slog.String("event_id", event.ID),
		slog.String("created_by", creator.ID),
	)
	return event, nil
}

// ListUpcomingEvents returns upcoming events still open for booking,
// soonest first.
func (s *EventService) ListUpcomingEvents(ctx context.Context) ([]model.EventListing, error) {
	events, err := s.events.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListUpcomingEvents", "Could not load events", err)
	}
	if events == nil {
		events = []model.EventListing{}
	}
	return events, nil
}

// ListAllEvents returns every event regardless of status, newest first.
func (s *EventService) ListAllEvents(ctx context.Context) ([]model.EventListing, error) {
	now := s.now()
	events, err := s.events.ListAll(ctx, now)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListAllEvents", "Could not load events", err)
	}
	if events == nil {
		events = []model.EventListing{}
	}
	return events, nil
}

// GetEvent returns a single event with its live booking state.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.EventListing, error) {
	if !validID(id) {
		return nil, fail(NotFound, "Event not found", nil)
	}
	event, confirmed, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fail(NotFound, "Event not found", err)
		}
		return nil, operationFailed(ctx, s.logger, "GetEvent", "Could not load the event", err,
			slog.String("event_id", id))
	}
	listing := model.NewEventListing(*event, confirmed, s.now())
	return &listing, nil
}

// UpdateEventStatus moves an event forward in its lifecycle.
func (s *EventService) UpdateEventStatus(ctx context.Context, id, status string) (*model.Event, error) {
	to := model.EventStatus(strings.ToLower(strings.TrimSpace(status)))
	if !to.Valid() {
		return nil, fail(InvalidInput, "status must be upcoming, ongoing, completed or cancelled", nil)
	}
	if !validID(id) {
		return nil, fail(NotFound, "Event not found", nil)
	}

	event, err := s.events.UpdateStatus(ctx, id, to, s.now())
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "event status changed",
			slog.String("event_id", id),
			slog.String("status", string(to)),
		)
		return event, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, fail(NotFound, "Event not found", err)
	case errors.Is(err, model.ErrInvalidTransition):
		return nil, fail(InvalidTransition, "Event status cannot move from its current state to "+string(to), err)
	default:
		return nil, operationFailed(ctx, s.logger, "UpdateEventStatus", "Could not update the event", err,
			slog.String("event_id", id))
	}
}

// ListEventBookings returns every booking row for an event.
func (s *EventService) ListEventBookings(ctx context.Context, eventID string) ([]model.Booking, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListEventBookings", "Could not load bookings", err,
			slog.String("event_id", eventID))
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

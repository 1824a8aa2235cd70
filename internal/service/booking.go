package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/Shivanand-hulikatti/community-hub/internal/observability"
	"github.com/Shivanand-hulikatti/community-hub/internal/repository"
	"go.opentelemetry.io/otel/attribute"
)

// BookingService books and cancels event places for members.
type BookingService struct {
	bookings BookingStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore, logger *slog.Logger) *BookingService {
	return &BookingService{bookings: bookings, logger: logger, now: time.Now}
}

// BookEvent books eventID for memberID. The first failing check wins: the
// member must exist and hold community membership, the event must exist and
// be bookable, and the member must not already hold a booking for it.
// Capacity is enforced under a row lock in the repository.
func (s *BookingService) BookEvent(ctx context.Context, memberID, eventID string) (booking *model.Booking, err error) {
	ctx, span := observability.StartSpan(ctx, "booking.BookEvent",
		attribute.String("member.id", memberID),
		attribute.String("event.id", eventID),
	)
	defer func() {
		observability.BookingAttempts.WithLabelValues(outcome(err)).Inc()
		observability.EndSpan(span, err)
	}()

	if !validID(memberID) {
		return nil, fail(NotFound, "User profile not found. Please complete your profile.", nil)
	}
	if !validID(eventID) {
		return nil, fail(NotFound, "Event not found", nil)
	}

	booking, err = s.bookings.Book(ctx, memberID, eventID, s.now())
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "event booked",
			append([]any{
				slog.String("member_id", memberID),
				slog.String("event_id", eventID),
				slog.String("booking_id", booking.ID),
			}, observability.ContextAttrs(ctx)...)...)
		return booking, nil
	case errors.Is(err, repository.ErrMemberNotFound):
		return nil, fail(NotFound, "User profile not found. Please complete your profile.", err)
	case errors.Is(err, model.ErrNotEligible):
		return nil, fail(NotEligible, "You must be a community member to book events", err)
	case errors.Is(err, repository.ErrEventNotFound):
		return nil, fail(NotFound, "Event not found", err)
	case errors.Is(err, model.ErrNotBookable):
		return nil, fail(NotBookable, "This event cannot be booked (expired, full, or cancelled)", err)
	case errors.Is(err, model.ErrAlreadyBooked):
		return nil, fail(AlreadyBooked, "You have already booked this event", err)
	default:
		return nil, operationFailed(ctx, s.logger, "BookEvent",
			"An error occurred while booking the event", err,
			slog.String("member_id", memberID), slog.String("event_id", eventID))
	}
}

// CancelBooking cancels the member's active booking for the event. The
// freed place is visible to the next booker immediately.
func (s *BookingService) CancelBooking(ctx context.Context, memberID, eventID string) (err error) {
	ctx, span := observability.StartSpan(ctx, "booking.CancelBooking",
		attribute.String("member.id", memberID),
		attribute.String("event.id", eventID),
	)
	defer func() { observability.EndSpan(span, err) }()

	if !validID(memberID) || !validID(eventID) {
		return fail(NotFound, "No active booking found for this event", nil)
	}

	err = s.bookings.Cancel(ctx, memberID, eventID)
	switch {
	case err == nil:
		observability.BookingCancellations.Inc()
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fail(NotFound, "No active booking found for this event", err)
	default:
		return operationFailed(ctx, s.logger, "CancelBooking",
			"An error occurred while cancelling the booking", err,
			slog.String("member_id", memberID), slog.String("event_id", eventID))
	}
}

// MarkAttended records that a confirmed booker came to the event.
func (s *BookingService) MarkAttended(ctx context.Context, eventID, memberID string) error {
	if !validID(memberID) || !validID(eventID) {
		return fail(NotFound, "No confirmed booking found for this member", nil)
	}
	err := s.bookings.MarkAttended(ctx, eventID, memberID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fail(NotFound, "No confirmed booking found for this member", err)
	default:
		return operationFailed(ctx, s.logger, "MarkAttended",
			"An error occurred while recording attendance", err,
			slog.String("member_id", memberID), slog.String("event_id", eventID))
	}
}

// ListMemberBookings returns every booking the member holds, newest first.
func (s *BookingService) ListMemberBookings(ctx context.Context, memberID string) ([]model.MemberBooking, error) {
	if !validID(memberID) {
		return nil, fail(NotFound, "User profile not found. Please complete your profile.", nil)
	}
	bookings, err := s.bookings.ListByMember(ctx, memberID)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListMemberBookings",
			"Could not load your bookings", err, slog.String("member_id", memberID))
	}
	if bookings == nil {
		bookings = []model.MemberBooking{}
	}
	return bookings, nil
}

// Package service implements business rules and orchestration between the
// HTTP handlers and the repository layer. Every operation returns a
// *Failure for expected outcomes; storage errors are logged and reported as
// OperationFailed.
package service

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/google/uuid"
)

// MemberStore is the member persistence used by the services.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (*model.Member, error)
	GetByAuthSubject(ctx context.Context, subject string) (*model.Member, error)
	UpsertProfile(ctx context.Context, subject string, in model.ProfileInput, now time.Time) (*model.Member, error)
	SetMembership(ctx context.Context, id string, isMember bool) error
	ListCommunityMembers(ctx context.Context) ([]model.Member, error)
	CountCommunityMembers(ctx context.Context) (int, error)
}

// EventStore is the event persistence used by the services.
type EventStore interface {
	Create(ctx context.Context, in model.CreateEventInput, createdBy string, now time.Time) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, int, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]model.EventListing, error)
	ListAll(ctx context.Context, now time.Time) ([]model.EventListing, error)
	UpdateStatus(ctx context.Context, id string, to model.EventStatus, now time.Time) (*model.Event, error)
	Count(ctx context.Context) (int, error)
	CountOpen(ctx context.Context, now time.Time) (int, error)
}

// BookingStore is the booking persistence used by the services.
type BookingStore interface {
	Book(ctx context.Context, memberID, eventID string, now time.Time) (*model.Booking, error)
	Cancel(ctx context.Context, memberID, eventID string) error
	MarkAttended(ctx context.Context, eventID, memberID string) error
	ListByMember(ctx context.Context, memberID string) ([]model.MemberBooking, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Booking, error)
	CountConfirmed(ctx context.Context) (int, error)
	RecentConfirmed(ctx context.Context, limit int) ([]model.RecentBooking, error)
}

// ReviewStore is the review persistence used by the services.
type ReviewStore interface {
	Upsert(ctx context.Context, memberID string, rating int, comment string, now time.Time) (*model.Review, bool, error)
	ListPublic(ctx context.Context, limit int) ([]model.Review, error)
	PublicSummary(ctx context.Context) (model.ReviewSummary, error)
	Count(ctx context.Context) (int, error)
}

// ApplicationStore is the membership application persistence used by the services.
type ApplicationStore interface {
	Create(ctx context.Context, app *model.MembershipApplication, now time.Time) error
	GetByID(ctx context.Context, id string) (*model.MembershipApplication, error)
	ListByStatus(ctx context.Context, status model.ApplicationStatus, limit int) ([]model.MembershipApplication, error)
	Decide(ctx context.Context, id string, to model.ApplicationStatus, now time.Time) (*model.MembershipApplication, int64, error)
	CountByStatus(ctx context.Context, status model.ApplicationStatus) (int, error)
}

// TeamStore is the staff team persistence used by the services.
type TeamStore interface {
	Create(ctx context.Context, in model.TeamMemberInput, now time.Time) (*model.TeamMember, error)
	ListActive(ctx context.Context) ([]model.TeamMember, error)
	ListAll(ctx context.Context) ([]model.TeamMember, error)
}

// validID reports whether id is a well-formed UUID. Malformed ids cannot
// name a stored row, so callers report them as not found.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// clampLimit bounds a caller supplied page size.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxLimit)
}

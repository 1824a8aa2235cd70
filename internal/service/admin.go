package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/Shivanand-hulikatti/community-hub/internal/repository"
	"golang.org/x/sync/errgroup"
)

const dashboardRecent = 5

// AdminService backs the admin dashboard and member management.
type AdminService struct {
	members      MemberStore
	events       EventStore
	bookings     BookingStore
	reviews      ReviewStore
	applications ApplicationStore
	logger       *slog.Logger
	now          func() time.Time
}

// NewAdminService constructs an AdminService.
func NewAdminService(
	members MemberStore,
	events EventStore,
	bookings BookingStore,
	reviews ReviewStore,
	applications ApplicationStore,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		members:      members,
		events:       events,
		bookings:     bookings,
		reviews:      reviews,
		applications: applications,
		logger:       logger,
		now:          time.Now,
	}
}

// Dashboard collects the admin overview. The queries are independent and
// run concurrently.
func (s *AdminService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	now := s.now()
	var d model.Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TotalMembers, err = s.members.CountCommunityMembers(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.PendingApplications, err = s.applications.CountByStatus(gctx, model.ApplicationPending)
		return err
	})
	g.Go(func() (err error) {
		d.TotalEvents, err = s.events.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.UpcomingEvents, err = s.events.CountOpen(gctx, now)
		return err
	})
	g.Go(func() (err error) {
		d.TotalBookings, err = s.bookings.CountConfirmed(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalReviews, err = s.reviews.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.RecentApplications, err = s.applications.ListByStatus(gctx, model.ApplicationPending, dashboardRecent)
		return err
	})
	g.Go(func() (err error) {
		d.RecentBookings, err = s.bookings.RecentConfirmed(gctx, dashboardRecent)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, operationFailed(ctx, s.logger, "Dashboard", "Could not load the dashboard", err)
	}

	if d.RecentApplications == nil {
		d.RecentApplications = []model.MembershipApplication{}
	}
	if d.RecentBookings == nil {
		d.RecentBookings = []model.RecentBooking{}
	}
	return &d, nil
}

// SetMembership grants or revokes community membership.
func (s *AdminService) SetMembership(ctx context.Context, memberID string, isMember bool) error {
	if !validID(memberID) {
		return fail(NotFound, "Member not found", nil)
	}
	err := s.members.SetMembership(ctx, memberID, isMember)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "membership changed",
			slog.String("member_id", memberID),
			slog.Bool("is_community_member", isMember),
		)
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fail(NotFound, "Member not found", err)
	default:
		return operationFailed(ctx, s.logger, "SetMembership", "Could not update membership", err,
			slog.String("member_id", memberID))
	}
}

// ListMembers returns all community members, newest first.
func (s *AdminService) ListMembers(ctx context.Context) ([]model.Member, error) {
	members, err := s.members.ListCommunityMembers(ctx)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListMembers", "Could not load members", err)
	}
	if members == nil {
		members = []model.Member{}
	}
	return members, nil
}

package service

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
)

// Stubs return zero values for any method the test leaves unset.

type memberStoreStub struct {
	getByIDFn               func(context.Context, string) (*model.Member, error)
	getByAuthSubjectFn      func(context.Context, string) (*model.Member, error)
	upsertProfileFn         func(context.Context, string, model.ProfileInput, time.Time) (*model.Member, error)
	setMembershipFn         func(context.Context, string, bool) error
	listCommunityMembersFn  func(context.Context) ([]model.Member, error)
	countCommunityMembersFn func(context.Context) (int, error)
}

func (s *memberStoreStub) GetByID(ctx context.Context, id string) (*model.Member, error) {
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, id)
}
func (s *memberStoreStub) GetByAuthSubject(ctx context.Context, subject string) (*model.Member, error) {
	if s.getByAuthSubjectFn == nil {
		return nil, nil
	}
	return s.getByAuthSubjectFn(ctx, subject)
}
func (s *memberStoreStub) UpsertProfile(ctx context.Context, subject string, in model.ProfileInput, now time.Time) (*model.Member, error) {
	if s.upsertProfileFn == nil {
		return nil, nil
	}
	return s.upsertProfileFn(ctx, subject, in, now)
}
func (s *memberStoreStub) SetMembership(ctx context.Context, id string, isMember bool) error {
	if s.setMembershipFn == nil {
		return nil
	}
	return s.setMembershipFn(ctx, id, isMember)
}
func (s *memberStoreStub) ListCommunityMembers(ctx context.Context) ([]model.Member, error) {
	if s.listCommunityMembersFn == nil {
		return nil, nil
	}
	return s.listCommunityMembersFn(ctx)
}
func (s *memberStoreStub) CountCommunityMembers(ctx context.Context) (int, error) {
	if s.countCommunityMembersFn == nil {
		return 0, nil
	}
	return s.countCommunityMembersFn(ctx)
}

type eventStoreStub struct {
	createFn       func(context.Context, model.CreateEventInput, string, time.Time) (*model.Event, error)
	getByIDFn      func(context.Context, string) (*model.Event, int, error)
	listUpcomingFn func(context.Context, time.Time) ([]model.EventListing, error)
	listAllFn      func(context.Context, time.Time) ([]model.EventListing, error)
	updateStatusFn func(context.Context, string, model.EventStatus, time.Time) (*model.Event, error)
	countFn        func(context.Context) (int, error)
	countOpenFn    func(context.Context, time.Time) (int, error)
	deleteFn       func(context.Context, time.Time) (int64, error)
	archiveFn      func(context.Context, time.Time) (int64, error)
}

func (s *eventStoreStub) Create(ctx context.Context, in model.CreateEventInput, createdBy string, now time.Time) (*model.Event, error) {
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(ctx, in, createdBy, now)
}
func (s *eventStoreStub) GetByID(ctx context.Context, id string) (*model.Event, int, error) {
	if s.getByIDFn == nil {
		return nil, 0, nil
	}
	return s.getByIDFn(ctx, id)
}
func (s *eventStoreStub) ListUpcoming(ctx context.Context, now time.Time) ([]model.EventListing, error) {
	if s.listUpcomingFn == nil {
		return nil, nil
	}
	return s.listUpcomingFn(ctx, now)
}
func (s *eventStoreStub) ListAll(ctx context.Context, now time.Time) ([]model.EventListing, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx, now)
}
func (s *eventStoreStub) UpdateStatus(ctx context.Context, id string, to model.EventStatus, now time.Time) (*model.Event, error) {
	if s.updateStatusFn == nil {
		return nil, nil
	}
	return s.updateStatusFn(ctx, id, to, now)
}
func (s *eventStoreStub) Count(ctx context.Context) (int, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}
func (s *eventStoreStub) CountOpen(ctx context.Context, now time.Time) (int, error) {
	if s.countOpenFn == nil {
		return 0, nil
	}
	return s.countOpenFn(ctx, now)
}
func (s *eventStoreStub) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if s.deleteFn == nil {
		return 0, nil
	}
	return s.deleteFn(ctx, now)
}
func (s *eventStoreStub) ArchiveExpired(ctx context.Context, now time.Time) (int64, error) {
	if s.archiveFn == nil {
		return 0, nil
	}
	return s.archiveFn(ctx, now)
}

type bookingStoreStub struct {
	bookFn            func(context.Context, string, string, time.Time) (*model.Booking, error)
	cancelFn          func(context.Context, string, string) error
	markAttendedFn    func(context.Context, string, string) error
	listByMemberFn    func(context.Context, string) ([]model.MemberBooking, error)
	listByEventFn     func(context.Context, string) ([]model.Booking, error)
	countConfirmedFn  func(context.Context) (int, error)
	recentConfirmedFn func(context.Context, int) ([]model.RecentBooking, error)
}

func (s *bookingStoreStub) Book(ctx context.Context, memberID, eventID string, now time.Time) (*model.Booking, error) {
	if s.bookFn == nil {
		return nil, nil
	}
	return s.bookFn(ctx, memberID, eventID, now)
}
func (s *bookingStoreStub) Cancel(ctx context.Context, memberID, eventID string) error {
	if s.cancelFn == nil {
		return nil
	}
	return s.cancelFn(ctx, memberID, eventID)
}
func (s *bookingStoreStub) MarkAttended(ctx context.Context, eventID, memberID string) error {
	if s.markAttendedFn == nil {
		return nil
	}
	return s.markAttendedFn(ctx, eventID, memberID)
}
func (s *bookingStoreStub) ListByMember(ctx context.Context, memberID string) ([]model.MemberBooking, error) {
	if s.listByMemberFn == nil {
		return nil, nil
	}
	return s.listByMemberFn(ctx, memberID)
}
func (s *bookingStoreStub) ListByEvent(ctx context.Context, eventID string) ([]model.Booking, error) {
	if s.listByEventFn == nil {
		return nil, nil
	}
	return s.listByEventFn(ctx, eventID)
}
func (s *bookingStoreStub) CountConfirmed(ctx context.Context) (int, error) {
	if s.countConfirmedFn == nil {
		return 0, nil
	}
	return s.countConfirmedFn(ctx)
}
func (s *bookingStoreStub) RecentConfirmed(ctx context.Context, limit int) ([]model.RecentBooking, error) {
	if s.recentConfirmedFn == nil {
		return nil, nil
	}
	return s.recentConfirmedFn(ctx, limit)
}

type reviewStoreStub struct {
	upsertFn        func(context.Context, string, int, string, time.Time) (*model.Review, bool, error)
	listPublicFn    func(context.Context, int) ([]model.Review, error)
	publicSummaryFn func(context.Context) (model.ReviewSummary, error)
	countFn         func(context.Context) (int, error)
}

func (s *reviewStoreStub) Upsert(ctx context.Context, memberID string, rating int, comment string, now time.Time) (*model.Review, bool, error) {
	if s.upsertFn == nil {
		return nil, false, nil
	}
	return s.upsertFn(ctx, memberID, rating, comment, now)
}
func (s *reviewStoreStub) ListPublic(ctx context.Context, limit int) ([]model.Review, error) {
	if s.listPublicFn == nil {
		return nil, nil
	}
	return s.listPublicFn(ctx, limit)
}
func (s *reviewStoreStub) PublicSummary(ctx context.Context) (model.ReviewSummary, error) {
	if s.publicSummaryFn == nil {
		return model.ReviewSummary{}, nil
	}
	return s.publicSummaryFn(ctx)
}
func (s *reviewStoreStub) Count(ctx context.Context) (int, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

type applicationStoreStub struct {
	createFn        func(context.Context, *model.MembershipApplication, time.Time) error
	getByIDFn       func(context.Context, string) (*model.MembershipApplication, error)
	listByStatusFn  func(context.Context, model.ApplicationStatus, int) ([]model.MembershipApplication, error)
	decideFn        func(context.Context, string, model.ApplicationStatus, time.Time) (*model.MembershipApplication, int64, error)
	countByStatusFn func(context.Context, model.ApplicationStatus) (int, error)
}

func (s *applicationStoreStub) Create(ctx context.Context, app *model.MembershipApplication, now time.Time) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, app, now)
}
func (s *applicationStoreStub) GetByID(ctx context.Context, id string) (*model.MembershipApplication, error) {
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, id)
}
func (s *applicationStoreStub) ListByStatus(ctx context.Context, status model.ApplicationStatus, limit int) ([]model.MembershipApplication, error) {
	if s.listByStatusFn == nil {
		return nil, nil
	}
	return s.listByStatusFn(ctx, status, limit)
}
func (s *applicationStoreStub) Decide(ctx context.Context, id string, to model.ApplicationStatus, now time.Time) (*model.MembershipApplication, int64, error) {
	if s.decideFn == nil {
		return nil, 0, nil
	}
	return s.decideFn(ctx, id, to, now)
}
func (s *applicationStoreStub) CountByStatus(ctx context.Context, status model.ApplicationStatus) (int, error) {
	if s.countByStatusFn == nil {
		return 0, nil
	}
	return s.countByStatusFn(ctx, status)
}

type statsStoreStub struct {
	getOrCreateFn  func(context.Context, time.Time) (*model.CommunityStats, bool, error)
	saveFn         func(context.Context, *model.CommunityStats) error
	countMembersFn func(context.Context) (int, error)
	countEventsFn  func(context.Context, time.Time, time.Time) (int, error)
}

func (s *statsStoreStub) GetOrCreate(ctx context.Context, now time.Time) (*model.CommunityStats, bool, error) {
	return s.getOrCreateFn(ctx, now)
}
func (s *statsStoreStub) Save(ctx context.Context, st *model.CommunityStats) error {
	if s.saveFn == nil {
		return nil
	}
	return s.saveFn(ctx, st)
}
func (s *statsStoreStub) CountActiveMembers(ctx context.Context) (int, error) {
	if s.countMembersFn == nil {
		return 0, nil
	}
	return s.countMembersFn(ctx)
}
func (s *statsStoreStub) CountEventsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	if s.countEventsFn == nil {
		return 0, nil
	}
	return s.countEventsFn(ctx, from, to)
}

type snapshotCacheStub struct {
	getFn func(context.Context) (*model.CommunityStats, error)
	putFn func(context.Context, *model.CommunityStats, time.Duration) error
}

func (s *snapshotCacheStub) Get(ctx context.Context) (*model.CommunityStats, error) {
	return s.getFn(ctx)
}
func (s *snapshotCacheStub) Put(ctx context.Context, st *model.CommunityStats, ttl time.Duration) error {
	if s.putFn == nil {
		return nil
	}
	return s.putFn(ctx, st, ttl)
}

type teamStoreStub struct {
	createFn     func(context.Context, model.TeamMemberInput, time.Time) (*model.TeamMember, error)
	listActiveFn func(context.Context) ([]model.TeamMember, error)
	listAllFn    func(context.Context) ([]model.TeamMember, error)
}

func (s *teamStoreStub) Create(ctx context.Context, in model.TeamMemberInput, now time.Time) (*model.TeamMember, error) {
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(ctx, in, now)
}
func (s *teamStoreStub) ListActive(ctx context.Context) ([]model.TeamMember, error) {
	if s.listActiveFn == nil {
		return nil, nil
	}
	return s.listActiveFn(ctx)
}
func (s *teamStoreStub) ListAll(ctx context.Context) ([]model.TeamMember, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

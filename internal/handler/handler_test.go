package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/Shivanand-hulikatti/community-hub/internal/observability"
	"github.com/Shivanand-hulikatti/community-hub/internal/service"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

type memberSvcStub struct {
	resolveFn  func(context.Context, string) (*model.Member, error)
	completeFn func(context.Context, string, model.ProfileInput) (*model.Member, error)
}

func (s *memberSvcStub) ResolveMember(ctx context.Context, subject string) (*model.Member, error) {
	return s.resolveFn(ctx, subject)
}
func (s *memberSvcStub) CompleteProfile(ctx context.Context, subject string, in model.ProfileInput) (*model.Member, error) {
	return s.completeFn(ctx, subject, in)
}

type bookingSvcStub struct {
	bookFn   func(context.Context, string, string) (*model.Booking, error)
	cancelFn func(context.Context, string, string) error
}

func (s *bookingSvcStub) BookEvent(ctx context.Context, memberID, eventID string) (*model.Booking, error) {
	return s.bookFn(ctx, memberID, eventID)
}
func (s *bookingSvcStub) CancelBooking(ctx context.Context, memberID, eventID string) error {
	return s.cancelFn(ctx, memberID, eventID)
}
func (s *bookingSvcStub) MarkAttended(context.Context, string, string) error { return nil }
func (s *bookingSvcStub) ListMemberBookings(context.Context, string) ([]model.MemberBooking, error) {
	return []model.MemberBooking{}, nil
}

type reviewSvcStub struct {
	submitFn func(context.Context, string, int, string) (*model.Review, bool, error)
}

func (s *reviewSvcStub) SubmitReview(ctx context.Context, memberID string, rating int, comment string) (*model.Review, bool, error) {
	return s.submitFn(ctx, memberID, rating, comment)
}
func (s *reviewSvcStub) ListPublicReviews(context.Context, int) (*service.ReviewFeed, error) {
	return &service.ReviewFeed{Reviews: []model.Review{}}, nil
}

type applicationSvcStub struct {
	submitFn func(context.Context, model.ApplicationInput) (*model.MembershipApplication, error)
	getFn    func(context.Context, string) (*model.MembershipApplication, error)
}

func (s *applicationSvcStub) SubmitApplication(ctx context.Context, in model.ApplicationInput) (*model.MembershipApplication, error) {
	return s.submitFn(ctx, in)
}
func (s *applicationSvcStub) ReviewApplication(_ context.Context, id string, approve bool) (*model.MembershipApplication, error) {
	st := model.ApplicationRejected
	if approve {
		st = model.ApplicationApproved
	}
	return &model.MembershipApplication{ID: id, Status: st}, nil
}
func (s *applicationSvcStub) GetApplication(ctx context.Context, id string) (*model.MembershipApplication, error) {
	return s.getFn(ctx, id)
}
func (s *applicationSvcStub) ListApplications(context.Context, string) ([]model.MembershipApplication, error) {
	return []model.MembershipApplication{}, nil
}

type adminSvcStub struct{}

func (adminSvcStub) Dashboard(context.Context) (*model.Dashboard, error) {
	return &model.Dashboard{TotalMembers: 3}, nil
}
func (adminSvcStub) SetMembership(context.Context, string, bool) error { return nil }
func (adminSvcStub) ListMembers(context.Context) ([]model.Member, error) {
	return []model.Member{}, nil
}

type teamSvcStub struct {
	added []model.TeamMemberInput
}

func (s *teamSvcStub) ListTeam(context.Context) ([]model.TeamMember, error) {
	return []model.TeamMember{{Name: "Amani", Position: model.PositionFounder, IsActive: true}}, nil
}
func (s *teamSvcStub) ListAllTeam(context.Context) ([]model.TeamMember, error) {
	return []model.TeamMember{
		{Name: "Amani", Position: model.PositionFounder, IsActive: true},
		{Name: "Juma", Position: model.PositionManager},
	}, nil
}
func (s *teamSvcStub) AddTeamMember(_ context.Context, in model.TeamMemberInput) (*model.TeamMember, error) {
	if !in.Position.Valid() {
		return nil, &service.Failure{Kind: service.InvalidInput, Message: "position: is not a known position"}
	}
	s.added = append(s.added, in)
	return &model.TeamMember{ID: "t1", Name: in.Name, Position: in.Position}, nil
}

type sweeperStub struct{ n int64 }

func (s sweeperStub) CleanExpiredEvents(context.Context) (int64, error) { return s.n, nil }

// members known to the stub resolver, keyed by token subject.
var testMembers = map[string]*model.Member{
	"member": {ID: "11111111-1111-1111-1111-111111111111", IsCommunityMember: true},
	"admin":  {ID: "22222222-2222-2222-2222-222222222222", IsCommunityMember: true, IsAdmin: true},
}

func newTestServer(t *testing.T, svcs Services, rdb *redis.Client) (*httptest.Server, *Authenticator) {
	t.Helper()
	if svcs.Members == nil {
		svcs.Members = &memberSvcStub{
			resolveFn: func(_ context.Context, sub string) (*model.Member, error) {
				if m, ok := testMembers[sub]; ok {
					return m, nil
				}
				return nil, &service.Failure{Kind: service.NotFound, Message: "User profile not found. Please complete your profile."}
			},
		}
	}
	if svcs.Bookings == nil {
		svcs.Bookings = &bookingSvcStub{}
	}
	if svcs.Admin == nil {
		svcs.Admin = adminSvcStub{}
	}
	if svcs.Sweeper == nil {
		svcs.Sweeper = sweeperStub{n: 2}
	}
	auth := NewAuthenticator(testSecret)
	h := New(svcs, auth, rdb, observability.DiscardLogger())

	r := chi.NewRouter()
	r.Use(Metrics)
	h.Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, auth
}

func do(t *testing.T, method, url, token, contentType, body string) (*http.Response, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func token(t *testing.T, auth *Authenticator, subject string) string {
	t.Helper()
	tok, err := auth.IssueToken(subject, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, Services{}, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthentication(t *testing.T) {
	srv, auth := newTestServer(t, Services{}, nil)

	resp, env := do(t, http.MethodGet, srv.URL+"/me/bookings", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = do(t, http.MethodGet, srv.URL+"/me/bookings", "not.a.jwt", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	other := NewAuthenticator("some-other-secret")
	forged, err := other.IssueToken("member", time.Hour)
	require.NoError(t, err)
	resp, _ = do(t, http.MethodGet, srv.URL+"/me/bookings", forged, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired, err := auth.IssueToken("member", -time.Minute)
	require.NoError(t, err)
	resp, _ = do(t, http.MethodGet, srv.URL+"/me/bookings", expired, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, env = do(t, http.MethodGet, srv.URL+"/me/bookings", token(t, auth, "stranger"), "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(service.NotFound), env.Error.Code)

	resp, env = do(t, http.MethodGet, srv.URL+"/me/bookings", token(t, auth, "member"), "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestBookEvent(t *testing.T) {
	eventID := "33333333-3333-3333-3333-333333333333"
	bookings := &bookingSvcStub{
		bookFn: func(_ context.Context, memberID, id string) (*model.Booking, error) {
			assert.Equal(t, testMembers["member"].ID, memberID)
			if id != eventID {
				return nil, &service.Failure{Kind: service.AlreadyBooked, Message: "You have already booked this event"}
			}
			return &model.Booking{ID: "b1", EventID: id, MemberID: memberID, Status: model.BookingConfirmed}, nil
		},
	}
	srv, auth := newTestServer(t, Services{Bookings: bookings}, nil)
	tok := token(t, auth, "member")

	resp, env := do(t, http.MethodPost, srv.URL+"/events/"+eventID+"/book", tok, "", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Event booked successfully!", env.Message)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b1", data["booking_id"])

	resp, env = do(t, http.MethodPost, srv.URL+"/events/44444444-4444-4444-4444-444444444444/book", tok, "", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "You have already booked this event", env.Message)
	assert.Equal(t, string(service.AlreadyBooked), env.Error.Code)
}

func TestCancelBooking_UnexpectedErrorIsHidden(t *testing.T) {
	bookings := &bookingSvcStub{cancelFn: func(context.Context, string, string) error {
		return errors.New("pq: connection refused")
	}}
	srv, auth := newTestServer(t, Services{Bookings: bookings}, nil)

	resp, env := do(t, http.MethodPost, srv.URL+"/events/x/cancel", token(t, auth, "member"), "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, env.Message, "pq")
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	srv, auth := newTestServer(t, Services{}, nil)

	resp, env := do(t, http.MethodGet, srv.URL+"/admin/dashboard", token(t, auth, "member"), "", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, string(service.Forbidden), env.Error.Code)

	resp, env = do(t, http.MethodGet, srv.URL+"/admin/dashboard", token(t, auth, "admin"), "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = do(t, http.MethodPost, srv.URL+"/admin/events/sweep", token(t, auth, "admin"), "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 2, env.Data.(map[string]any)["affected"], 0)
}

func TestTeamRoutes(t *testing.T) {
	team := &teamSvcStub{}
	srv, auth := newTestServer(t, Services{Team: team}, nil)

	resp, env := do(t, http.MethodGet, srv.URL+"/team", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data, 1)

	resp, _ = do(t, http.MethodGet, srv.URL+"/admin/team", token(t, auth, "member"), "", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env = do(t, http.MethodGet, srv.URL+"/admin/team", token(t, auth, "admin"), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data, 2)

	resp, env = do(t, http.MethodPost, srv.URL+"/admin/team", token(t, auth, "admin"), "application/json",
		`{"name":"Neema","position":"mentor","order":2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "t1", env.Data.(map[string]any)["id"])
	require.Len(t, team.added, 1)
	assert.Equal(t, 2, team.added[0].SortOrder)

	resp, env = do(t, http.MethodPost, srv.URL+"/admin/team", token(t, auth, "admin"), "application/json",
		`{"name":"Neema","position":"intern"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(service.InvalidInput), env.Error.Code)
}

func TestSubmitReview_FormAndJSON(t *testing.T) {
	var gotRating int
	var gotComment string
	reviews := &reviewSvcStub{submitFn: func(_ context.Context, _ string, rating int, comment string) (*model.Review, bool, error) {
		gotRating, gotComment = rating, comment
		return &model.Review{Rating: rating, Comment: comment}, rating == 4, nil
	}}
	srv, auth := newTestServer(t, Services{Reviews: reviews}, nil)
	tok := token(t, auth, "member")

	form := url.Values{"rating": {"4"}, "comment": {"lovely"}}.Encode()
	resp, env := do(t, http.MethodPost, srv.URL+"/reviews", tok, "application/x-www-form-urlencoded", form)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Review submitted successfully!", env.Message)
	assert.Equal(t, 4, gotRating)
	assert.Equal(t, "lovely", gotComment)

	resp, env = do(t, http.MethodPost, srv.URL+"/reviews", tok, "application/json", `{"rating":5,"comment":"better"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Review updated successfully!", env.Message)

	resp, env = do(t, http.MethodPost, srv.URL+"/reviews", tok, "application/x-www-form-urlencoded", "rating=five&comment=x")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid rating value", env.Message)
}

func TestSubmitApplication_Form(t *testing.T) {
	var got model.ApplicationInput
	apps := &applicationSvcStub{submitFn: func(_ context.Context, in model.ApplicationInput) (*model.MembershipApplication, error) {
		got = in
		return &model.MembershipApplication{ID: "app-1"}, nil
	}}
	srv, _ := newTestServer(t, Services{Applications: apps}, nil)

	form := url.Values{
		"first_name":  {"Neema"},
		"skills":      {"go, sql"},
		"agree_terms": {"on"},
		"job_title_1": {"Engineer"},
		"company_1":   {"Acme"},
		"job_title_2": {""},
	}.Encode()
	resp, env := do(t, http.MethodPost, srv.URL+"/applications", "", "application/x-www-form-urlencoded", form)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Application submitted successfully!", env.Message)

	assert.Equal(t, "Neema", got.FirstName)
	assert.True(t, got.AgreeTerms)
	assert.Equal(t, model.StringList{"go", "sql"}, got.Skills)
	require.Len(t, got.WorkExperience, 2)
	assert.Equal(t, "Acme", got.WorkExperience[0].Company)
}

func TestSubmitApplication_JSONDuplicate(t *testing.T) {
	apps := &applicationSvcStub{submitFn: func(_ context.Context, in model.ApplicationInput) (*model.MembershipApplication, error) {
		assert.Equal(t, model.StringList{"English", "Swahili"}, in.Languages)
		return nil, &service.Failure{Kind: service.DuplicateApplication, Message: "An application with this email or ID number already exists"}
	}}
	srv, _ := newTestServer(t, Services{Applications: apps}, nil)

	resp, env := do(t, http.MethodPost, srv.URL+"/applications", "", "application/json",
		`{"first_name":"Neema","languages":"[\"English\",\"Swahili\"]","extra":"ignored"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, string(service.DuplicateApplication), env.Error.Code)
}

func TestGetApplication_AdminOnly(t *testing.T) {
	const id = "6a1d3c4e-0000-4000-8000-000000000001"
	apps := &applicationSvcStub{getFn: func(_ context.Context, got string) (*model.MembershipApplication, error) {
		if got != id {
			return nil, &service.Failure{Kind: service.NotFound, Message: "Application not found"}
		}
		return &model.MembershipApplication{ID: id, Email: "neema@example.com", Status: model.ApplicationPending}, nil
	}}
	srv, auth := newTestServer(t, Services{Applications: apps}, nil)

	resp, _ := do(t, http.MethodGet, srv.URL+"/admin/applications/"+id, token(t, auth, "member"), "", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := do(t, http.MethodGet, srv.URL+"/admin/applications/"+id, token(t, auth, "admin"), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "neema@example.com", env.Data.(map[string]any)["email"])

	resp, env = do(t, http.MethodGet, srv.URL+"/admin/applications/unknown", token(t, auth, "admin"), "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(service.NotFound), env.Error.Code)
}

func TestSubmitApplication_RateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	apps := &applicationSvcStub{submitFn: func(context.Context, model.ApplicationInput) (*model.MembershipApplication, error) {
		return &model.MembershipApplication{ID: "app"}, nil
	}}
	srv, _ := newTestServer(t, Services{Applications: apps}, rdb)

	for i := 0; i < applicationRateLimit; i++ {
		resp, _ := do(t, http.MethodPost, srv.URL+"/applications", "", "application/json", `{}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, env := do(t, http.MethodPost, srv.URL+"/applications", "", "application/json", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, codeRateLimited, env.Error.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(service.NotFound))
	assert.Equal(t, http.StatusForbidden, statusFor(service.NotEligible))
	assert.Equal(t, http.StatusConflict, statusFor(service.NotBookable))
	assert.Equal(t, http.StatusBadRequest, statusFor(service.EmptyComment))
	assert.Equal(t, http.StatusConflict, statusFor(service.InvalidTransition))
	assert.Equal(t, http.StatusInternalServerError, statusFor(service.OperationFailed))
}

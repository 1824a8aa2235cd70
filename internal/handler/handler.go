// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/Shivanand-hulikatti/community-hub/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// MemberService resolves and edits member profiles.
type MemberService interface {
	ResolveMember(ctx context.Context, subject string) (*model.Member, error)
	CompleteProfile(ctx context.Context, subject string, in model.ProfileInput) (*model.Member, error)
}

// EventService lists and manages events.
type EventService interface {
	ListUpcomingEvents(ctx context.Context) ([]model.EventListing, error)
	ListAllEvents(ctx context.Context) ([]model.EventListing, error)
	GetEvent(ctx context.Context, id string) (*model.EventListing, error)
	CreateEvent(ctx context.Context, creatorID string, in model.CreateEventInput) (*model.Event, error)
	UpdateEventStatus(ctx context.Context, id, status string) (*model.Event, error)
	ListEventBookings(ctx context.Context, eventID string) ([]model.Booking, error)
}

// BookingService books and cancels event places.
type BookingService interface {
	BookEvent(ctx context.Context, memberID, eventID string) (*model.Booking, error)
	CancelBooking(ctx context.Context, memberID, eventID string) error
	MarkAttended(ctx context.Context, eventID, memberID string) error
	ListMemberBookings(ctx context.Context, memberID string) ([]model.MemberBooking, error)
}

// ReviewService submits and lists reviews.
type ReviewService interface {
	SubmitReview(ctx context.Context, memberID string, rating int, comment string) (*model.Review, bool, error)
	ListPublicReviews(ctx context.Context, limit int) (*service.ReviewFeed, error)
}

// StatsService serves the community statistics.
type StatsService interface {
	GetCurrentStats(ctx context.Context) (*model.CommunityStats, error)
}

// ApplicationService takes in and decides membership applications.
type ApplicationService interface {
	SubmitApplication(ctx context.Context, in model.ApplicationInput) (*model.MembershipApplication, error)
	ReviewApplication(ctx context.Context, id string, approve bool) (*model.MembershipApplication, error)
	GetApplication(ctx context.Context, id string) (*model.MembershipApplication, error)
	ListApplications(ctx context.Context, status string) ([]model.MembershipApplication, error)
}

// AdminService backs the admin dashboard and member management.
type AdminService interface {
	Dashboard(ctx context.Context) (*model.Dashboard, error)
	SetMembership(ctx context.Context, memberID string, isMember bool) error
	ListMembers(ctx context.Context) ([]model.Member, error)
}

// TeamService lists and adds staff team members.
type TeamService interface {
	ListTeam(ctx context.Context) ([]model.TeamMember, error)
	ListAllTeam(ctx context.Context) ([]model.TeamMember, error)
	AddTeamMember(ctx context.Context, in model.TeamMemberInput) (*model.TeamMember, error)
}

// Sweeper clears expired events.
type Sweeper interface {
	CleanExpiredEvents(ctx context.Context) (int64, error)
}

// Services groups the handler's dependencies.
type Services struct {
	Members      MemberService
	Events       EventService
	Bookings     BookingService
	Reviews      ReviewService
	Stats        StatsService
	Applications ApplicationService
	Admin        AdminService
	Team         TeamService
	Sweeper      Sweeper
}

// Application submissions allowed per client IP per hour.
const (
	applicationRateLimit  = 5
	applicationRateWindow = time.Hour
)

// Handler holds all HTTP handlers for the community API.
type Handler struct {
	members      MemberService
	events       EventService
	bookings     BookingService
	reviews      ReviewService
	stats        StatsService
	applications ApplicationService
	admin        AdminService
	team         TeamService
	sweeper      Sweeper

	auth   *Authenticator
	redis  *redis.Client
	logger *slog.Logger
}

// New constructs a Handler. rdb may be nil, which disables rate limiting.
func New(svcs Services, auth *Authenticator, rdb *redis.Client, logger *slog.Logger) *Handler {
	return &Handler{
		members:      svcs.Members,
		events:       svcs.Events,
		bookings:     svcs.Bookings,
		reviews:      svcs.Reviews,
		stats:        svcs.Stats,
		applications: svcs.Applications,
		admin:        svcs.Admin,
		team:         svcs.Team,
		sweeper:      svcs.Sweeper,
		auth:         auth,
		redis:        rdb,
		logger:       logger,
	}
}

// Routes mounts every endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Get("/events", h.ListEvents)
	r.Get("/events/{id}", h.GetEvent)
	r.Get("/reviews", h.ListReviews)
	r.Get("/stats", h.GetStats)
	r.Get("/team", h.ListTeam)
	r.With(RateLimit(h.redis, "applications", applicationRateLimit, applicationRateWindow, h.logger)).
		Post("/applications", h.SubmitApplication)

	r.Group(func(r chi.Router) {
		r.Use(h.auth.Authenticate)
		r.Put("/me/profile", h.CompleteProfile)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireMember)
			r.Get("/me", h.Me)
			r.Get("/me/bookings", h.ListMyBookings)
			r.Post("/events/{id}/book", h.BookEvent)
			r.Post("/events/{id}/cancel", h.CancelBooking)
			r.Post("/reviews", h.SubmitReview)

			r.Route("/admin", func(r chi.Router) {
				r.Use(h.RequireAdmin)
				r.Get("/dashboard", h.Dashboard)

				r.Get("/events", h.ListAllEvents)
				r.Post("/events", h.CreateEvent)
				r.Post("/events/sweep", h.SweepExpiredEvents)
				r.Patch("/events/{id}/status", h.UpdateEventStatus)
				r.Get("/events/{id}/bookings", h.ListEventBookings)
				r.Post("/events/{id}/attendance/{memberID}", h.MarkAttended)

				r.Get("/applications", h.ListApplications)
				r.Get("/applications/{id}", h.GetApplication)
				r.Post("/applications/{id}/approve", h.ApproveApplication)
				r.Post("/applications/{id}/reject", h.RejectApplication)

				r.Get("/members", h.ListMembers)
				r.Patch("/members/{id}/membership", h.SetMembership)

				r.Get("/team", h.ListAllTeam)
				r.Post("/team", h.AddTeamMember)
			})
		})
	})
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

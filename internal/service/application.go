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

const maxApplicationList = 200

// ApplicationService takes in membership applications and lets admins
// decide them.
type ApplicationService struct {
	applications ApplicationStore
	logger       *slog.Logger
	now          func() time.Time
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(applications ApplicationStore, logger *slog.Logger) *ApplicationService {
	return &ApplicationService{applications: applications, logger: logger, now: time.Now}
}

// SubmitApplication validates and stores a pending application. A second
// application with the same email or ID number is a DuplicateApplication.
func (s *ApplicationService) SubmitApplication(ctx context.Context, in model.ApplicationInput) (app *model.MembershipApplication, err error) {
	ctx, span := observability.StartSpan(ctx, "application.SubmitApplication")
	defer func() {
		observability.ApplicationsSubmitted.WithLabelValues(outcome(err)).Inc()
		observability.EndSpan(span, err)
	}()

	now := s.now()
	app, err = in.Normalize(now)
	if err != nil {
		return nil, fail(InvalidInput, err.Error(), err)
	}

	err = s.applications.Create(ctx, app, now)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "membership application received",
			slog.String("application_id", app.ID),
			slog.String("region", app.Region),
		)
		return app, nil
	case errors.Is(err, repository.ErrDuplicate):
		return nil, fail(DuplicateApplication,
			"An application with this email or ID number already exists", err)
	default:
		return nil, operationFailed(ctx, s.logger, "SubmitApplication",
			"There was an error submitting your application. Please try again.", err)
	}
}

// ReviewApplication approves or rejects a pending application. Approving
// grants community membership to a member registered with the same email.
func (s *ApplicationService) ReviewApplication(ctx context.Context, id string, approve bool) (app *model.MembershipApplication, err error) {
	to := model.ApplicationRejected
	if approve {
		to = model.ApplicationApproved
	}
	ctx, span := observability.StartSpan(ctx, "application.ReviewApplication",
		attribute.String("application.id", id),
		attribute.String("application.decision", string(to)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if !validID(id) {
		return nil, fail(NotFound, "Application not found", nil)
	}

	app, promoted, err := s.applications.Decide(ctx, id, to, s.now())
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "membership application decided",
			slog.String("application_id", id),
			slog.String("status", string(to)),
			slog.Int64("members_promoted", promoted),
		)
		return app, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, fail(NotFound, "Application not found", err)
	case errors.Is(err, model.ErrInvalidTransition):
		return nil, fail(InvalidTransition, "Application has already been reviewed", err)
	default:
		return nil, operationFailed(ctx, s.logger, "ReviewApplication",
			"Could not update the application", err, slog.String("application_id", id))
	}
}

// GetApplication returns one application in full, whatever its status.
func (s *ApplicationService) GetApplication(ctx context.Context, id string) (*model.MembershipApplication, error) {
	if !validID(id) {
		return nil, fail(NotFound, "Application not found", nil)
	}
	app, err := s.applications.GetByID(ctx, id)
	switch {
	case err == nil:
		return app, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, fail(NotFound, "Application not found", err)
	default:
		return nil, operationFailed(ctx, s.logger, "GetApplication",
			"Could not load the application", err, slog.String("application_id", id))
	}
}

// ListApplications returns applications in status, newest first. An empty
// status means pending.
func (s *ApplicationService) ListApplications(ctx context.Context, status string) ([]model.MembershipApplication, error) {
	st := model.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
	if st == "" {
		st = model.ApplicationPending
	}
	if !st.Valid() {
		return nil, fail(InvalidInput, "status must be pending, approved or rejected", nil)
	}

	apps, err := s.applications.ListByStatus(ctx, st, maxApplicationList)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListApplications", "Could not load applications", err)
	}
	if apps == nil {
		apps = []model.MembershipApplication{}
	}
	return apps, nil
}

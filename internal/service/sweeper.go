package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/observability"
)

// SweepMode selects what happens to expired events.
type SweepMode string

const (
	// SweepDelete removes expired events together with their bookings.
	SweepDelete SweepMode = "delete"
	// SweepArchive moves expired events to cancelled and keeps their bookings.
	SweepArchive SweepMode = "archive"
)

// ExpiredEventStore removes or archives upcoming events past their deadline.
type ExpiredEventStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	ArchiveExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper clears upcoming events whose booking deadline has passed.
type Sweeper struct {
	events ExpiredEventStore
	mode   SweepMode
	logger *slog.Logger
	now    func() time.Time
}

// NewSweeper constructs a Sweeper. An unknown mode falls back to SweepDelete.
func NewSweeper(events ExpiredEventStore, mode SweepMode, logger *slog.Logger) *Sweeper {
	if mode != SweepArchive {
		mode = SweepDelete
	}
	return &Sweeper{events: events, mode: mode, logger: logger, now: time.Now}
}

// Mode returns the configured policy.
func (s *Sweeper) Mode() SweepMode { return s.mode }

// CleanExpiredEvents sweeps at the sweeper's clock and returns the number
// of events affected. Running it twice in a row affects nothing the second
// time.
func (s *Sweeper) CleanExpiredEvents(ctx context.Context) (int64, error) {
	return s.Sweep(ctx, s.now())
}

// Sweep handles every upcoming event whose deadline is before now.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (n int64, err error) {
	ctx, span := observability.StartSpan(ctx, "sweeper.Sweep")
	defer func() { observability.EndSpan(span, err) }()

	switch s.mode {
	case SweepArchive:
		n, err = s.events.ArchiveExpired(ctx, now)
	default:
		n, err = s.events.DeleteExpired(ctx, now)
	}
	if err != nil {
		return 0, operationFailed(ctx, s.logger, "CleanExpiredEvents",
			fmt.Sprintf("Could not %s expired events", s.mode), err)
	}

	observability.ExpiredEventsSwept.WithLabelValues(string(s.mode)).Add(float64(n))
	s.logger.InfoContext(ctx, "expired events swept",
		slog.String("mode", string(s.mode)),
		slog.Int64("count", n),
	)
	return n, nil
}

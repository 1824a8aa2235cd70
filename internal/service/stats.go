package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/cache"
	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/Shivanand-hulikatti/community-hub/internal/observability"
)

// DefaultStatsTTL is how long a computed stats row is served before it is
// recomputed.
const DefaultStatsTTL = time.Hour

// StatsStore is the persistence behind the stats row.
type StatsStore interface {
	GetOrCreate(ctx context.Context, now time.Time) (*model.CommunityStats, bool, error)
	Save(ctx context.Context, s *model.CommunityStats) error
	CountActiveMembers(ctx context.Context) (int, error)
	CountEventsCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// SnapshotCache holds a copy of the stats row outside the database.
// Get returns cache.ErrMiss when nothing is stored.
type SnapshotCache interface {
	Get(ctx context.Context) (*model.CommunityStats, error)
	Put(ctx context.Context, s *model.CommunityStats, ttl time.Duration) error
}

// StatsConfig tunes the StatsCache.
type StatsConfig struct {
	TTL             time.Duration
	MentorshipPairs int
	ActiveProjects  int
}

// StatsCache serves the community statistics row, recomputing it at most
// once per TTL.
type StatsCache struct {
	store     StatsStore
	snapshots SnapshotCache
	cfg       StatsConfig
	logger    *slog.Logger
	now       func() time.Time
}

// NewStatsCache constructs a StatsCache. snapshots may be nil.
func NewStatsCache(store StatsStore, snapshots SnapshotCache, cfg StatsConfig, logger *slog.Logger) *StatsCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultStatsTTL
	}
	return &StatsCache{store: store, snapshots: snapshots, cfg: cfg, logger: logger, now: time.Now}
}

// GetCurrentStats is Current at the cache's clock.
func (c *StatsCache) GetCurrentStats(ctx context.Context) (*model.CommunityStats, error) {
	return c.Current(ctx, c.now())
}

// Current returns the stats row as of now. A missing row is created; a
// new or stale row is recomputed and saved. Concurrent refreshes are
// harmless, the last write wins.
func (c *StatsCache) Current(ctx context.Context, now time.Time) (stats *model.CommunityStats, err error) {
	ctx, span := observability.StartSpan(ctx, "stats.Current")
	defer func() { observability.EndSpan(span, err) }()

	if s := c.cached(ctx, now); s != nil {
		return s, nil
	}

	stats, created, err := c.store.GetOrCreate(ctx, now)
	if err != nil {
		return nil, operationFailed(ctx, c.logger, "GetCurrentStats", "Could not load community statistics", err)
	}

	if created || stats.IsStale(now, c.cfg.TTL) {
		if err := c.refresh(ctx, stats, now); err != nil {
			return nil, operationFailed(ctx, c.logger, "GetCurrentStats", "Could not load community statistics", err)
		}
	}

	if c.snapshots != nil {
		if err := c.snapshots.Put(ctx, stats, stats.FreshFor(now, c.cfg.TTL)); err != nil {
			c.logger.WarnContext(ctx, "stats snapshot write failed", slog.String("error", err.Error()))
		}
	}
	return stats, nil
}

// cached returns a fresh snapshot, or nil. Cache errors only cost a
// database read.
func (c *StatsCache) cached(ctx context.Context, now time.Time) *model.CommunityStats {
	if c.snapshots == nil {
		return nil
	}
	s, err := c.snapshots.Get(ctx)
	switch {
	case errors.Is(err, cache.ErrMiss):
		observability.StatsCacheLookups.WithLabelValues("miss").Inc()
		return nil
	case err != nil:
		observability.StatsCacheLookups.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "stats snapshot read failed", slog.String("error", err.Error()))
		return nil
	case s.IsStale(now, c.cfg.TTL):
		observability.StatsCacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	observability.StatsCacheLookups.WithLabelValues("hit").Inc()
	return s
}

func (c *StatsCache) refresh(ctx context.Context, s *model.CommunityStats, now time.Time) error {
	members, err := c.store.CountActiveMembers(ctx)
	if err != nil {
		return err
	}
	from, to := model.YearBounds(now)
	events, err := c.store.CountEventsCreatedBetween(ctx, from, to)
	if err != nil {
		return err
	}

	s.ActiveMembers = members
	s.TotalEvents = events
	s.MentorshipPairs = c.cfg.MentorshipPairs
	s.ActiveProjects = c.cfg.ActiveProjects
	s.LastUpdated = now.UTC()
	if err := c.store.Save(ctx, s); err != nil {
		return err
	}
	observability.StatsRefreshes.Inc()
	c.logger.InfoContext(ctx, "community stats refreshed",
		slog.Int("active_members", s.ActiveMembers),
		slog.Int("total_events", s.TotalEvents),
	)
	return nil
}

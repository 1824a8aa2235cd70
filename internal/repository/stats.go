package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository reads and writes the singleton community_stats row and
// runs the counts it is derived from.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetOrCreate returns the stats row, inserting a zeroed one stamped now if
// it does not exist yet. created is true only for the caller whose insert won.
func (r *StatsRepository) GetOrCreate(ctx context.Context, now time.Time) (*model.CommunityStats, bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO community_stats (id, last_updated) VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING`,
		model.StatsRowID, now.UTC(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("create stats row: %w", err)
	}

	var s model.CommunityStats
	err = r.db.QueryRow(ctx,
		`SELECT active_members, total_events, mentorship_pairs, active_projects, last_updated
		 FROM community_stats WHERE id = $1`,
		model.StatsRowID,
	).Scan(&s.ActiveMembers, &s.TotalEvents, &s.MentorshipPairs, &s.ActiveProjects, &s.LastUpdated)
	if err != nil {
		return nil, false, fmt.Errorf("read stats row: %w", err)
	}
	return &s, tag.RowsAffected() == 1, nil
}

// Save overwrites the stats row.
func (r *StatsRepository) Save(ctx context.Context, s *model.CommunityStats) error {
	_, err := r.db.Exec(ctx,
		`UPDATE community_stats
		 SET active_members = $2, total_events = $3, mentorship_pairs = $4,
		     active_projects = $5, last_updated = $6
		 WHERE id = $1`,
		model.StatsRowID, s.ActiveMembers, s.TotalEvents, s.MentorshipPairs, s.ActiveProjects,
		s.LastUpdated.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save stats row: %w", err)
	}
	return nil
}

// CountActiveMembers counts members with community membership.
func (r *StatsRepository) CountActiveMembers(ctx context.Context) (int, error) {
	return NewMemberRepository(r.db).CountCommunityMembers(ctx)
}

// CountEventsCreatedBetween counts events created in [from, to).
func (r *StatsRepository) CountEventsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	return NewEventRepository(r.db).CountCreatedBetween(ctx, from, to)
}

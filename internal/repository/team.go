package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const teamColumns = `id, name, position, bio, quote, image_url, email, linkedin,
	sort_order, is_active, created_at`

// TeamRepository handles persistence for the staff team.
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository constructs a TeamRepository.
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

func scanTeamMember(row pgx.Row) (*model.TeamMember, error) {
	var m model.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.Position, &m.Bio, &m.Quote, &m.ImageURL, &m.Email, &m.LinkedIn,
		&m.SortOrder, &m.IsActive, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.PositionLabel = m.Position.Label()
	return &m, nil
}

// Create inserts a team member from normalized input.
func (r *TeamRepository) Create(ctx context.Context, in model.TeamMemberInput, now time.Time) (*model.TeamMember, error) {
	active := in.IsActive == nil || *in.IsActive
	m, err := scanTeamMember(r.db.QueryRow(ctx,
		`INSERT INTO team_members (id, name, position, bio, quote, image_url, email, linkedin,
		                           sort_order, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+teamColumns,
		uuid.NewString(), in.Name, in.Position, in.Bio, in.Quote, in.ImageURL, in.Email, in.LinkedIn,
		in.SortOrder, active, now,
	))
	if err != nil {
		return nil, fmt.Errorf("insert team member: %w", err)
	}
	return m, nil
}

// ListActive returns the members shown publicly, by display order then name.
func (r *TeamRepository) ListActive(ctx context.Context) ([]model.TeamMember, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM team_members
		WHERE is_active ORDER BY sort_order, name`)
}

// ListAll includes inactive members.
func (r *TeamRepository) ListAll(ctx context.Context) ([]model.TeamMember, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM team_members ORDER BY sort_order, name`)
}

func (r *TeamRepository) list(ctx context.Context, query string) ([]model.TeamMember, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var out []model.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const memberColumns = `id, auth_subject, first_name, last_name, email, phone, bio,
	is_community_member, is_admin, joined_at`

// MemberRepository handles persistence for members.
type MemberRepository struct {
	db *pgxpool.Pool
}

// NewMemberRepository constructs a MemberRepository.
func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{db: db}
}

func scanMember(row pgx.Row) (*model.Member, error) {
	var m model.Member
	err := row.Scan(&m.ID, &m.AuthSubject, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Bio,
		&m.IsCommunityMember, &m.IsAdmin, &m.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID returns a member or ErrMemberNotFound.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*model.Member, error) {
	m, err := scanMember(r.db.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

// GetByAuthSubject returns the member linked to an authentication principal.
func (r *MemberRepository) GetByAuthSubject(ctx context.Context, subject string) (*model.Member, error) {
	m, err := scanMember(r.db.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE auth_subject = $1`, subject))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member by subject: %w", err)
	}
	return m, nil
}

// UpsertProfile creates the member for subject on first call and updates
// the profile fields afterwards. The unique auth_subject column keeps one
// member per principal even when two first calls race.
func (r *MemberRepository) UpsertProfile(ctx context.Context, subject string, in model.ProfileInput, now time.Time) (*model.Member, error) {
	m, err := scanMember(r.db.QueryRow(ctx,
		`INSERT INTO members (id, auth_subject, first_name, last_name, email, phone, bio, joined_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (auth_subject) DO UPDATE
		 SET first_name = EXCLUDED.first_name,
		     last_name  = EXCLUDED.last_name,
		     email      = EXCLUDED.email,
		     phone      = EXCLUDED.phone,
		     bio        = EXCLUDED.bio
		 RETURNING `+memberColumns,
		uuid.NewString(), subject, in.FirstName, in.LastName, in.Email, in.Phone, in.Bio, now,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert member profile: %w", err)
	}
	return m, nil
}

// SetMembership sets the community membership flag.
func (r *MemberRepository) SetMembership(ctx context.Context, id string, isMember bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE members SET is_community_member = $2 WHERE id = $1`, id, isMember)
	if err != nil {
		return fmt.Errorf("set membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// ListCommunityMembers returns members with the membership flag, newest first.
func (r *MemberRepository) ListCommunityMembers(ctx context.Context) ([]model.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+memberColumns+`
		 FROM members
		 WHERE is_community_member
		 ORDER BY joined_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// CountCommunityMembers counts members with the membership flag set.
func (r *MemberRepository) CountCommunityMembers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM members WHERE is_community_member`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}

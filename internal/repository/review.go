package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepository handles persistence for reviews.
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository constructs a ReviewRepository.
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Upsert writes the member's single review: a new public review on first
// call, an overwrite of rating, comment and visibility afterwards. created
// reports which happened. The ON CONFLICT clause makes concurrent first
// submissions collapse onto one row.
func (r *ReviewRepository) Upsert(ctx context.Context, memberID string, rating int, comment string, now time.Time) (*model.Review, bool, error) {
	var (
		rv      model.Review
		created bool
	)
	err := r.db.QueryRow(ctx,
		`INSERT INTO reviews (id, member_id, rating, comment, is_public, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		 ON CONFLICT (member_id) DO UPDATE
		 SET rating     = EXCLUDED.rating,
		     comment    = EXCLUDED.comment,
		     is_public  = TRUE,
		     updated_at = EXCLUDED.updated_at
		 RETURNING id, member_id, rating, comment, is_public, created_at, updated_at,
		           (xmax = 0) AS inserted`,
		uuid.NewString(), memberID, rating, comment, now.UTC(),
	).Scan(&rv.ID, &rv.MemberID, &rv.Rating, &rv.Comment, &rv.IsPublic, &rv.CreatedAt, &rv.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("upsert review: %w", err)
	}
	return &rv, created, nil
}

// ListPublic returns public reviews with member names, newest first.
func (r *ReviewRepository) ListPublic(ctx context.Context, limit int) ([]model.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rv.id, rv.member_id, TRIM(m.first_name || ' ' || m.last_name),
		        rv.rating, rv.comment, rv.is_public, rv.created_at, rv.updated_at
		 FROM reviews rv
		 JOIN members m ON m.id = rv.member_id
		 WHERE rv.is_public
		 ORDER BY rv.created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.MemberID, &rv.MemberName, &rv.Rating, &rv.Comment,
			&rv.IsPublic, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// PublicSummary returns the count and mean rating of public reviews.
func (r *ReviewRepository) PublicSummary(ctx context.Context) (model.ReviewSummary, error) {
	var s model.ReviewSummary
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0)::float8 FROM reviews WHERE is_public`,
	).Scan(&s.Count, &s.Average)
	if err != nil {
		return s, fmt.Errorf("review summary: %w", err)
	}
	return s, nil
}

// Count returns the number of reviews, public or not.
func (r *ReviewRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

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

const applicationColumns = `id, first_name, last_name, email, phone, date_of_birth, gender, id_number,
	current_address, region, district, education, occupation,
	work_experience, skills, languages, why_join, contribution, expectations, referral,
	agree_terms, status, created_at, updated_at`

// ApplicationRepository handles persistence for membership applications.
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row pgx.Row) (*model.MembershipApplication, error) {
	var a model.MembershipApplication
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.DateOfBirth, &a.Gender,
		&a.IDNumber, &a.CurrentAddress, &a.Region, &a.District, &a.Education, &a.Occupation,
		&a.WorkExperience, &a.Skills, &a.Languages, &a.WhyJoin, &a.Contribution, &a.Expectations,
		&a.Referral, &a.AgreeTerms, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create stores a new application. A second application with the same
// email or ID number fails with ErrDuplicate.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.MembershipApplication, now time.Time) error {
	app.ID = uuid.NewString()
	app.CreatedAt = now.UTC()
	app.UpdatedAt = app.CreatedAt

	_, err := r.db.Exec(ctx,
		`INSERT INTO membership_applications (`+applicationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		         $17, $18, $19, $20, $21, $22, $23, $24)`,
		app.ID, app.FirstName, app.LastName, app.Email, app.Phone, app.DateOfBirth, app.Gender,
		app.IDNumber, app.CurrentAddress, app.Region, app.District, app.Education, app.Occupation,
		app.WorkExperience, app.Skills, app.Languages, app.WhyJoin, app.Contribution, app.Expectations,
		app.Referral, app.AgreeTerms, app.Status, app.CreatedAt, app.UpdatedAt,
	)
	if constraint, dup := isUniqueViolation(err); dup {
		return fmt.Errorf("%w: %s", ErrDuplicate, constraint)
	}
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetByID returns an application or ErrApplicationNotFound.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*model.MembershipApplication, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

// ListByStatus returns up to limit applications in status, newest first.
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status model.ApplicationStatus, limit int) ([]model.MembershipApplication, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM membership_applications
		 WHERE status = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		status, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []model.MembershipApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Decide moves a pending application to approved or rejected. Approval also
// grants community membership to any member registered with the same email;
// promoted reports how many were updated. Both writes share one transaction.
func (r *ApplicationRepository) Decide(ctx context.Context, id string, to model.ApplicationStatus, now time.Time) (app *model.MembershipApplication, promoted int64, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	app, err = scanApplication(tx.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrApplicationNotFound
		}
		return nil, 0, fmt.Errorf("lock application: %w", err)
	}
	if app.Status != model.ApplicationPending {
		return nil, 0, fmt.Errorf("%w: application already %s", model.ErrInvalidTransition, app.Status)
	}

	app.Status = to
	app.UpdatedAt = now.UTC()
	if _, err := tx.Exec(ctx,
		`UPDATE membership_applications SET status = $2, updated_at = $3 WHERE id = $1`,
		app.ID, app.Status, app.UpdatedAt,
	); err != nil {
		return nil, 0, fmt.Errorf("update application status: %w", err)
	}

	if to == model.ApplicationApproved {
		tag, err := tx.Exec(ctx,
			`UPDATE members SET is_community_member = TRUE
			 WHERE lower(email) = lower($1) AND NOT is_community_member`,
			app.Email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("grant membership: %w", err)
		}
		promoted = tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit transaction: %w", err)
	}
	return app, promoted, nil
}

// CountByStatus counts applications in status.
func (r *ApplicationRepository) CountByStatus(ctx context.Context, status model.ApplicationStatus) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM membership_applications WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

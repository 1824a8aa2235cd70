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

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Book records a confirmed booking of eventID by memberID inside one
// transaction. Checks run in order and the first failure is returned:
//
//  1. the member exists (ErrMemberNotFound) and is a community member
//     (model.ErrNotEligible);
//  2. the event exists (ErrEventNotFound) and can be booked at now given
//     its live confirmed count (model.ErrNotBookable);
//  3. the member has no live booking for it (model.ErrAlreadyBooked).
//
// Capacity: the event row is taken with SELECT ... FOR UPDATE before the
// confirmed bookings are counted. A second booker for the same event blocks
// on that lock until the first commits or rolls back, and its count then
// sees the first booking, so two racing calls for the last place cannot
// both pass the capacity check. Bookers for different events never contend.
//
// A cancelled row for the pair is flipped back to confirmed instead of
// inserting a second row, keeping (event_id, member_id) unique.
func (r *BookingRepository) Book(ctx context.Context, memberID, eventID string, now time.Time) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	var isMember bool
	err = tx.QueryRow(ctx,
		`SELECT is_community_member FROM members WHERE id = $1`, memberID,
	).Scan(&isMember)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("load member: %w", err)
	}
	if !isMember {
		return nil, model.ErrNotEligible
	}

	var event model.Event
	err = tx.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1 FOR UPDATE`, eventID,
	).Scan(eventDest(&event)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	var confirmed int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1 AND status = 'confirmed'`, eventID,
	).Scan(&confirmed)
	if err != nil {
		return nil, fmt.Errorf("count confirmed bookings: %w", err)
	}
	if err := event.CheckBookable(now, confirmed); err != nil {
		return nil, err
	}

	existing, err := lockExistingBooking(ctx, tx, eventID, memberID)
	if err != nil {
		return nil, err
	}
	action, err := model.PlanBooking(existing)
	if err != nil {
		return nil, err
	}

	var booking *model.Booking
	switch action {
	case model.BookingInsert:
		booking = &model.Booking{
			ID:       uuid.NewString(),
			EventID:  eventID,
			MemberID: memberID,
			Status:   model.BookingConfirmed,
			BookedAt: now.UTC(),
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO bookings (id, event_id, member_id, status, booked_at, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			booking.ID, booking.EventID, booking.MemberID, booking.Status, booking.BookedAt, booking.Notes,
		)
		if _, dup := isUniqueViolation(err); dup {
			return nil, model.ErrAlreadyBooked
		}
		if err != nil {
			return nil, fmt.Errorf("insert booking: %w", err)
		}
	case model.BookingReinstate:
		booking = existing
		booking.Status = model.BookingConfirmed
		booking.BookedAt = now.UTC()
		if _, err := tx.Exec(ctx,
			`UPDATE bookings SET status = $2, booked_at = $3 WHERE id = $1`,
			booking.ID, booking.Status, booking.BookedAt,
		); err != nil {
			return nil, fmt.Errorf("reinstate booking: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return booking, nil
}

// lockExistingBooking returns the member's row for the event, or nil.
func lockExistingBooking(ctx context.Context, tx pgx.Tx, eventID, memberID string) (*model.Booking, error) {
	var b model.Booking
	err := tx.QueryRow(ctx,
		`SELECT id, event_id, member_id, status, booked_at, notes
		 FROM bookings
		 WHERE event_id = $1 AND member_id = $2
		 FOR UPDATE`,
		eventID, memberID,
	).Scan(&b.ID, &b.EventID, &b.MemberID, &b.Status, &b.BookedAt, &b.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	return &b, nil
}

// Cancel moves the member's pending or confirmed booking for the event to
// cancelled. It returns ErrBookingNotFound when there is no such booking.
// No counters change; the freed place shows up in the next confirmed count.
func (r *BookingRepository) Cancel(ctx context.Context, memberID, eventID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = 'cancelled'
		 WHERE event_id = $1 AND member_id = $2 AND status IN ('pending', 'confirmed')`,
		eventID, memberID,
	)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// MarkAttended moves a confirmed booking to attended.
func (r *BookingRepository) MarkAttended(ctx context.Context, eventID, memberID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = 'attended'
		 WHERE event_id = $1 AND member_id = $2 AND status = 'confirmed'`,
		eventID, memberID,
	)
	if err != nil {
		return fmt.Errorf("mark attended: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListByMember returns all of a member's bookings, newest first.
func (r *BookingRepository) ListByMember(ctx context.Context, memberID string) ([]model.MemberBooking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.event_id, b.member_id, b.status, b.booked_at, b.notes,
		        e.title, e.date_time, e.status
		 FROM bookings b
		 JOIN events e ON e.id = b.event_id
		 WHERE b.member_id = $1
		 ORDER BY b.booked_at DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list member bookings: %w", err)
	}
	defer rows.Close()

	var out []model.MemberBooking
	for rows.Next() {
		var mb model.MemberBooking
		if err := rows.Scan(&mb.ID, &mb.EventID, &mb.MemberID, &mb.Status, &mb.BookedAt, &mb.Notes,
			&mb.EventTitle, &mb.EventDateTime, &mb.EventStatus); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, mb)
	}
	return out, rows.Err()
}

// ListByEvent returns every booking row for an event, oldest first.
func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, member_id, status, booked_at, notes
		 FROM bookings
		 WHERE event_id = $1
		 ORDER BY booked_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list event bookings: %w", err)
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.EventID, &b.MemberID, &b.Status, &b.BookedAt, &b.Notes); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CountConfirmed counts confirmed bookings across all events.
func (r *BookingRepository) CountConfirmed(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// RecentConfirmed returns the latest confirmed bookings with member and event names.
func (r *BookingRepository) RecentConfirmed(ctx context.Context, limit int) ([]model.RecentBooking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.event_id, b.member_id, b.status, b.booked_at, b.notes,
		        TRIM(m.first_name || ' ' || m.last_name), e.title
		 FROM bookings b
		 JOIN members m ON m.id = b.member_id
		 JOIN events e ON e.id = b.event_id
		 WHERE b.status = 'confirmed'
		 ORDER BY b.booked_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	defer rows.Close()

	var out []model.RecentBooking
	for rows.Next() {
		var rb model.RecentBooking
		if err := rows.Scan(&rb.ID, &rb.EventID, &rb.MemberID, &rb.Status, &rb.BookedAt, &rb.Notes,
			&rb.MemberName, &rb.EventTitle); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}

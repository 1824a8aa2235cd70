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

const eventColumns = `e.id, e.title, e.description, e.event_type, e.date_time, e.deadline,
	e.location, e.is_online, e.max_participants, e.price, e.requirements, e.status,
	e.created_by, e.created_at, e.updated_at`

// confirmedCountColumn counts live confirmed bookings for the event aliased e.
const confirmedCountColumn = `(SELECT COUNT(*) FROM bookings b
	WHERE b.event_id = e.id AND b.status = 'confirmed')`

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// eventDest returns scan destinations matching eventColumns.
func eventDest(e *model.Event) []any {
	return []any{&e.ID, &e.Title, &e.Description, &e.EventType, &e.DateTime, &e.Deadline,
		&e.Location, &e.IsOnline, &e.MaxParticipants, &e.Price, &e.Requirements, &e.Status,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt}
}

// Create inserts a new event and returns it with a generated UUID.
func (r *EventRepository) Create(ctx context.Context, in model.CreateEventInput, createdBy string, now time.Time) (*model.Event, error) {
	event := &model.Event{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Description:     in.Description,
		EventType:       in.EventType,
		DateTime:        in.DateTime.UTC(),
		Deadline:        in.Deadline.UTC(),
		Location:        in.Location,
		IsOnline:        in.IsOnline,
		MaxParticipants: in.MaxParticipants,
		Price:           in.Price,
		Requirements:    in.Requirements,
		Status:          model.EventUpcoming,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if createdBy != "" {
		event.CreatedBy = &createdBy
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, description, event_type, date_time, deadline, location,
		                     is_online, max_participants, price, requirements, status,
		                     created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		event.ID, event.Title, event.Description, event.EventType, event.DateTime, event.Deadline,
		event.Location, event.IsOnline, event.MaxParticipants, event.Price, event.Requirements,
		event.Status, event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// GetByID returns a single event with its confirmed booking count, or ErrEventNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, int, error) {
	var (
		e         model.Event
		confirmed int
	)
	err := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+`, `+confirmedCountColumn+`
		 FROM events e WHERE e.id = $1`,
		id,
	).Scan(append(eventDest(&e), &confirmed)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrEventNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	return &e, confirmed, nil
}

// ListUpcoming returns upcoming events whose deadline has not passed,
// soonest first, with their live booking state.
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]model.EventListing, error) {
	return r.list(ctx, now,
		`SELECT `+eventColumns+`, `+confirmedCountColumn+`
		 FROM events e
		 WHERE e.status = 'upcoming' AND e.deadline >= $1
		 ORDER BY e.date_time ASC`,
		now,
	)
}

// ListAll returns every event, newest first.
func (r *EventRepository) ListAll(ctx context.Context, now time.Time) ([]model.EventListing, error) {
	return r.list(ctx, now,
		`SELECT `+eventColumns+`, `+confirmedCountColumn+`
		 FROM events e
		 ORDER BY e.created_at DESC`,
	)
}

func (r *EventRepository) list(ctx context.Context, now time.Time, query string, args ...any) ([]model.EventListing, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.EventListing
	for rows.Next() {
		var (
			e         model.Event
			confirmed int
		)
		if err := rows.Scan(append(eventDest(&e), &confirmed)...); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, model.NewEventListing(e, confirmed, now))
	}
	return events, rows.Err()
}

// UpdateStatus moves an event to a new status if the transition is allowed.
// The row is locked so concurrent status changes cannot skip a check.
func (r *EventRepository) UpdateStatus(ctx context.Context, id string, to model.EventStatus, now time.Time) (*model.Event, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var e model.Event
	err = tx.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1 FOR UPDATE`, id,
	).Scan(eventDest(&e)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}
	if !e.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, e.Status, to)
	}

	e.Status = to
	e.UpdatedAt = now.UTC()
	if _, err := tx.Exec(ctx,
		`UPDATE events SET status = $2, updated_at = $3 WHERE id = $1`,
		id, e.Status, e.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("update event status: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &e, nil
}

// DeleteExpired removes upcoming events whose deadline is before now.
// Their bookings go with them (ON DELETE CASCADE).
func (r *EventRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM events WHERE deadline < $1 AND status = 'upcoming'`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired events: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ArchiveExpired marks upcoming events whose deadline is before now as
// cancelled, keeping their bookings.
func (r *EventRepository) ArchiveExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET status = 'cancelled', updated_at = $1
		 WHERE deadline < $1 AND status = 'upcoming'`, now)
	if err != nil {
		return 0, fmt.Errorf("archive expired events: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of events.
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// CountOpen counts events whose deadline is at or after now.
func (r *EventRepository) CountOpen(ctx context.Context, now time.Time) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE deadline >= $1`, now).Scan(&n); err != nil {
		return 0, fmt.Errorf("count open events: %w", err)
	}
	return n, nil
}

// CountCreatedBetween counts events created in [from, to).
func (r *EventRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events created: %w", err)
	}
	return n, nil
}

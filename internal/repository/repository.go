// Package repository implements all database queries for the school events
// dashboard. It uses pgx directly (no ORM).
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned when a user registers for the same event twice.
var ErrAlreadyRegistered = errors.New("user already registered for this event")

// ErrEmailTaken is returned when signing up with an email that has an account.
var ErrEmailTaken = errors.New("email already registered")

// PostgreSQL error codes and constraint names the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"

	registrationUniqueConstraint = "event_registrations_event_id_user_id_key"
	userEmailUniqueConstraint    = "users_email_key"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

const eventColumns = `id, title, description, date, time, location, category,
	max_registrations, status, created_by, created_at, updated_at`

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts e, assigning its ID and timestamps.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	date, err := time.Parse(model.DateLayout, e.Date)
	if err != nil {
		return fmt.Errorf("parse event date: %w", err)
	}

	now := time.Now().UTC()
	e.ID = uuid.New().String()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err = r.db.Exec(ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.Title, e.Description, date, e.Time, e.Location, e.Category,
		e.MaxRegistrations, string(e.Status), e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns all events ordered by date ascending.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 ORDER BY date ASC, time ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	e, err := scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// AdvanceStatuses moves events along their lifecycle as of the given civil
// date and wall-clock time: past days become completed, today's upcoming
// events whose start time has passed become ongoing. It returns the number
// of rows changed.
func (r *EventRepository) AdvanceStatuses(ctx context.Context, today time.Time, clock string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	completed, err := tx.Exec(ctx,
		`UPDATE events SET status = 'completed', updated_at = now()
		 WHERE status <> 'completed' AND date < $1`,
		today,
	)
	if err != nil {
		return 0, fmt.Errorf("complete past events: %w", err)
	}

	started, err := tx.Exec(ctx,
		`UPDATE events SET status = 'ongoing', updated_at = now()
		 WHERE status = 'upcoming' AND date = $1 AND time <= $2`,
		today, clock,
	)
	if err != nil {
		return 0, fmt.Errorf("start today's events: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return completed.RowsAffected() + started.RowsAffected(), nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		e      model.Event
		date   time.Time
		status string
	)
	err := row.Scan(&e.ID, &e.Title, &e.Description, &date, &e.Time, &e.Location, &e.Category,
		&e.MaxRegistrations, &status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	e.Date = date.Format(model.DateLayout)
	e.Status = model.Status(status)
	return &e, nil
}

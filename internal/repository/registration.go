package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistrationRepository handles persistence for event registrations.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a single (event, user) registration. The unique constraint
// on the pair is the only duplicate guard; a violation maps to
// ErrAlreadyRegistered and an unknown event to ErrNotFound. Capacity is not
// checked here.
func (r *RegistrationRepository) Create(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, ErrNotFound
	}

	reg := &model.Registration{
		ID:           uuid.New().String(),
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now().UTC(),
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO event_registrations (id, event_id, user_id, registered_at)
		 VALUES ($1, $2, $3, $4)`,
		reg.ID, reg.EventID, reg.UserID, reg.RegisteredAt,
	)
	if err != nil {
		if pgErr, ok := pgError(err); ok {
			switch {
			case pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == registrationUniqueConstraint:
				return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, pgErr.Message)
			case pgErr.Code == codeForeignKeyViolation:
				return nil, ErrNotFound
			}
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return reg, nil
}

// Delete removes the user's registration for the event. Deleting a
// registration that does not exist is not an error.
func (r *RegistrationRepository) Delete(ctx context.Context, eventID, userID string) error {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

// CountByEvent returns the exact number of registrations for an event.
func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`,
		eventID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

// EventIDsByUser returns the ids of every event the user registered for.
func (r *RegistrationRepository) EventIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT event_id FROM event_registrations WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByUser returns the events the user registered for, joined with their
// registration time, newest registration first.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.title, e.description, e.date, e.time, e.location, e.category,
		        e.max_registrations, e.status, e.created_by, e.created_at, e.updated_at,
		        er.registered_at
		 FROM event_registrations er
		 JOIN events e ON e.id = er.event_id
		 WHERE er.user_id = $1
		 ORDER BY er.registered_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registered events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var (
			e            model.Event
			date         time.Time
			status       string
			registeredAt time.Time
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &date, &e.Time, &e.Location, &e.Category,
			&e.MaxRegistrations, &status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &registeredAt); err != nil {
			return nil, fmt.Errorf("scan registered event: %w", err)
		}
		e.Date = date.Format(model.DateLayout)
		e.Status = model.Status(status)
		e.RegisteredAt = &registeredAt
		e.IsRegistered = true
		events = append(events, e)
	}
	return events, rows.Err()
}

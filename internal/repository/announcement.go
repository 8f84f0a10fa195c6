package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unknownCreator names the author of an announcement without a profile.
const unknownCreator = "Unknown"

// AnnouncementRepository handles persistence for announcements.
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository constructs an AnnouncementRepository.
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// List returns announcements newest first, joined to the creator's profile.
func (r *AnnouncementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.title, a.content, a.created_by, a.created_at,
		        p.first_name, p.last_name
		 FROM announcements a
		 LEFT JOIN profiles p ON p.user_id = a.created_by
		 ORDER BY a.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var out []model.Announcement
	for rows.Next() {
		var (
			a         model.Announcement
			firstName *string
			lastName  *string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedBy, &a.CreatedAt, &firstName, &lastName); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		a.CreatorName = creatorName(firstName, lastName)
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetByID returns one announcement or ErrNotFound.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var a model.Announcement
	err := r.db.QueryRow(ctx,
		`SELECT id, title, content, created_by, created_at FROM announcements WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Title, &a.Content, &a.CreatedBy, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	return &a, nil
}

// Create inserts a, assigning its ID and creation time.
func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	a.ID = uuid.New().String()
	a.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO announcements (id, title, content, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Title, a.Content, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == codeForeignKeyViolation {
			return fmt.Errorf("insert announcement: creator has no profile: %w", ErrNotFound)
		}
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// Delete removes an announcement by ID.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func creatorName(first, last *string) string {
	if first == nil && last == nil {
		return unknownCreator
	}
	p := model.Profile{}
	if first != nil {
		p.FirstName = *first
	}
	if last != nil {
		p.LastName = *last
	}
	if name := p.FullName(); name != "" {
		return name
	}
	return unknownCreator
}

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

// UserRepository handles persistence for accounts and their profiles.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithProfile inserts the user and its profile in one transaction,
// assigning the user ID to both.
func (r *UserRepository) CreateWithProfile(ctx context.Context, u *model.User, p *model.Profile) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	now := time.Now().UTC()
	u.ID = uuid.New().String()
	u.CreatedAt = now
	p.UserID = u.ID
	p.Email = u.Email
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		if pgErr, ok := pgError(err); ok &&
			pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == userEmailUniqueConstraint {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (user_id, email, first_name, last_name, display_name, role,
		                       student_id, grade, section, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.UserID, p.Email, p.FirstName, p.LastName, p.DisplayName, string(p.Role),
		p.StudentID, p.Grade, p.Section, p.Phone, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByEmail returns the account with the given email or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ProfileRepository reads profiles.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID returns the profile of a user or ErrNotFound.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrNotFound
	}

	var (
		p    model.Profile
		role string
	)
	err := r.db.QueryRow(ctx,
		`SELECT user_id, email, first_name, last_name, display_name, role,
		        student_id, grade, section, phone, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Email, &p.FirstName, &p.LastName, &p.DisplayName, &role,
		&p.StudentID, &p.Grade, &p.Section, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Role = model.Role(role)
	return &p, nil
}

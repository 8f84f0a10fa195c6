package repository

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
)

// EventStore defines the event storage operations.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// StatusAdvancer moves events through their lifecycle.
type StatusAdvancer interface {
	AdvanceStatuses(ctx context.Context, today time.Time, clock string) (int64, error)
}

// RegistrationStore defines the registration storage operations.
type RegistrationStore interface {
	Create(ctx context.Context, eventID, userID string) (*model.Registration, error)
	Delete(ctx context.Context, eventID, userID string) error
	CountByEvent(ctx context.Context, eventID string) (int, error)
	EventIDsByUser(ctx context.Context, userID string) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]model.Event, error)
}

// UserStore defines the account storage operations.
type UserStore interface {
	CreateWithProfile(ctx context.Context, u *model.User, p *model.Profile) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProfileStore defines the profile lookups.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

// AnnouncementStore defines the announcement storage operations.
type AnnouncementStore interface {
	List(ctx context.Context) ([]model.Announcement, error)
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	Create(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
}

var (
	_ EventStore        = (*EventRepository)(nil)
	_ StatusAdvancer    = (*EventRepository)(nil)
	_ RegistrationStore = (*RegistrationRepository)(nil)
	_ UserStore         = (*UserRepository)(nil)
	_ ProfileStore      = (*ProfileRepository)(nil)
	_ AnnouncementStore = (*AnnouncementRepository)(nil)
)

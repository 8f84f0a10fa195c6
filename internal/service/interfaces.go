package service

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
)

// EventServicer is the event API consumed by the HTTP layer.
type EventServicer interface {
	ListEvents(ctx context.Context, viewerID string, f model.Filter) (*model.Feed, error)
	GetEvent(ctx context.Context, viewerID, id string) (*model.Event, error)
	CreateEvent(ctx context.Context, viewerID string, req model.CreateEventRequest) (*model.Feed, error)
	Register(ctx context.Context, viewerID, eventID string) (*model.Feed, error)
	Unregister(ctx context.Context, viewerID, eventID string) (*model.Feed, error)
	MyEvents(ctx context.Context, viewerID string) ([]model.Event, error)
	Dashboard(ctx context.Context, viewerID string) (*model.Dashboard, error)
	Calendar(ctx context.Context, viewerID string, year int, month time.Month) (*model.CalendarMonth, error)
}

// AuthServicer is the account API consumed by the HTTP layer.
type AuthServicer interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (*model.Profile, error)
	SignIn(ctx context.Context, req model.SignInRequest) (*model.User, error)
	Profile(ctx context.Context, viewerID string) (*model.Profile, error)
	SignOut(ctx context.Context, viewerID string)
}

// AnnouncementServicer is the announcements API consumed by the HTTP layer.
type AnnouncementServicer interface {
	List(ctx context.Context) (*AnnouncementFeed, error)
	Create(ctx context.Context, viewerID string, req model.CreateAnnouncementRequest) (*AnnouncementFeed, error)
	Delete(ctx context.Context, viewerID, id string) (*AnnouncementFeed, error)
}

var (
	_ EventServicer        = (*EventService)(nil)
	_ AuthServicer         = (*AuthService)(nil)
	_ AnnouncementServicer = (*AnnouncementService)(nil)
)

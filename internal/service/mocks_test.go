package service

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockEventStore is a mock implementation of repository.EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Create(ctx context.Context, e *model.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventStore) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Copy so the service's in-place decoration never leaks between calls.
	return append([]model.Event(nil), args.Get(0).([]model.Event)...), args.Error(1)
}

func (m *MockEventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	e := *args.Get(0).(*model.Event)
	return &e, args.Error(1)
}

// MockRegistrationStore is a mock implementation of repository.RegistrationStore
type MockRegistrationStore struct {
	mock.Mock
}

func (m *MockRegistrationStore) Create(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *MockRegistrationStore) Delete(ctx context.Context, eventID, userID string) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockRegistrationStore) CountByEvent(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationStore) EventIDsByUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRegistrationStore) ListByUser(ctx context.Context, userID string) ([]model.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return append([]model.Event(nil), args.Get(0).([]model.Event)...), args.Error(1)
}

// MockProfileStore is a mock implementation of repository.ProfileStore
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

// MockUserStore is a mock implementation of repository.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateWithProfile(ctx context.Context, u *model.User, p *model.Profile) error {
	args := m.Called(ctx, u, p)
	return args.Error(0)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockAnnouncementStore is a mock implementation of repository.AnnouncementStore
type MockAnnouncementStore struct {
	mock.Mock
}

func (m *MockAnnouncementStore) List(ctx context.Context) ([]model.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return append([]model.Announcement(nil), args.Get(0).([]model.Announcement)...), args.Error(1)
}

func (m *MockAnnouncementStore) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *MockAnnouncementStore) Create(ctx context.Context, a *model.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnnouncementStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	_ repository.EventStore        = (*MockEventStore)(nil)
	_ repository.RegistrationStore = (*MockRegistrationStore)(nil)
	_ repository.ProfileStore      = (*MockProfileStore)(nil)
	_ repository.UserStore         = (*MockUserStore)(nil)
	_ repository.AnnouncementStore = (*MockAnnouncementStore)(nil)
)

func testEvent(id, title string, status model.Status, limit int) model.Event {
	return model.Event{
		ID:               id,
		Title:            title,
		Date:             "2026-05-01",
		Time:             "10:00",
		Location:         "Main Hall",
		Category:         "Academic",
		MaxRegistrations: limit,
		Status:           status,
		CreatedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Notice texts shown after event operations.
const (
	msgEventCreated      = "Event created successfully!"
	msgRegistered        = "Successfully registered for event!"
	msgUnregistered      = "Successfully unregistered from event"
	msgAlreadyRegistered = "You are already registered for this event"
	msgEventNotFound     = "Event not found"
	msgLoadFailed        = "Failed to load events"
)

// countConcurrency bounds the per-event count queries of one aggregation.
const countConcurrency = 8

// SnapshotStore keeps the last good aggregation per viewer.
type SnapshotStore interface {
	Save(ctx context.Context, viewerID string, events []model.Event) error
	Load(ctx context.Context, viewerID string) ([]model.Event, bool, error)
}

// EventService orchestrates event-related business operations.
type EventService struct {
	events        repository.EventStore
	registrations repository.RegistrationStore
	profiles      repository.ProfileStore
	snapshots     SnapshotStore
	log           *zap.Logger
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(
	events repository.EventStore,
	registrations repository.RegistrationStore,
	profiles repository.ProfileStore,
	snapshots SnapshotStore,
	log *zap.Logger,
) *EventService {
	return &EventService{
		events:        events,
		registrations: registrations,
		profiles:      profiles,
		snapshots:     snapshots,
		log:           log,
	}
}

// ListEvents aggregates every event with its live registration count and the
// viewer's membership, then applies f. When the backend fails the feed holds
// the viewer's previous list and a failure notice, and ErrLoadEvents is
// returned with it.
func (s *EventService) ListEvents(ctx context.Context, viewerID string, f model.Filter) (*model.Feed, error) {
	events, err := s.load(ctx, viewerID)
	feed := model.NewFeed(events, f)
	if err != nil {
		feed.Notices = append(feed.Notices, model.Failure(msgLoadFailed))
		return feed, err
	}
	return feed, nil
}

// GetEvent returns a single event with its count and the viewer's membership.
func (s *EventService) GetEvent(ctx context.Context, viewerID, id string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	single := []model.Event{*event}
	if err := s.countRegistrations(ctx, single); err != nil {
		return nil, err
	}
	registered, err := s.registeredIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	decorate(single, registered, viewerID != "")
	return &single[0], nil
}

// CreateEvent validates the request, inserts the event owned by the viewer
// and refetches the list.
func (s *EventService) CreateEvent(ctx context.Context, viewerID string, req model.CreateEventRequest) (*model.Feed, error) {
	if viewerID == "" {
		return nil, ErrUnauthenticated
	}
	if err := s.requirePublisher(ctx, viewerID); err != nil {
		return nil, err
	}
	event, err := newEvent(req)
	if err != nil {
		return nil, err
	}
	event.CreatedBy = viewerID

	notice := model.Success(msgEventCreated)
	werr := s.events.Create(ctx, event)
	if werr != nil {
		s.log.Error("failed to create event", zap.String("user_id", viewerID), zap.Error(werr))
		notice = model.Failure("Failed to create event")
		werr = fmt.Errorf("create event: %w", werr)
	} else {
		s.log.Info("event created", zap.String("event_id", event.ID), zap.String("user_id", viewerID))
	}
	return s.refetch(ctx, viewerID, notice, werr)
}

// Register adds the viewer to the event and refetches the list. Capacity is
// not checked; the database uniqueness constraint is the only guard.
func (s *EventService) Register(ctx context.Context, viewerID, eventID string) (*model.Feed, error) {
	if viewerID == "" {
		return nil, ErrUnauthenticated
	}

	notice := model.Success(msgRegistered)
	_, werr := s.registrations.Create(ctx, eventID, viewerID)
	if werr != nil {
		notice = model.Failure(registrationFailure(werr))
		s.log.Warn("registration failed",
			zap.String("event_id", eventID), zap.String("user_id", viewerID), zap.Error(werr))
	}
	return s.refetch(ctx, viewerID, notice, werr)
}

// Unregister removes the viewer from the event and refetches the list.
func (s *EventService) Unregister(ctx context.Context, viewerID, eventID string) (*model.Feed, error) {
	if viewerID == "" {
		return nil, ErrUnauthenticated
	}

	notice := model.Success(msgUnregistered)
	werr := s.registrations.Delete(ctx, eventID, viewerID)
	if werr != nil {
		notice = model.Failure("Failed to unregister from event")
		s.log.Error("unregistration failed",
			zap.String("event_id", eventID), zap.String("user_id", viewerID), zap.Error(werr))
	}
	return s.refetch(ctx, viewerID, notice, werr)
}

// MyEvents returns the events the viewer registered for, newest registration
// first, each with its live count.
func (s *EventService) MyEvents(ctx context.Context, viewerID string) ([]model.Event, error) {
	if viewerID == "" {
		return nil, ErrUnauthenticated
	}
	events, err := s.registrations.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.countRegistrations(ctx, events); err != nil {
		return nil, err
	}
	for i := range events {
		a := model.ActionFor(&events[i], true)
		events[i].Action = &a
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// Dashboard summarizes the aggregated list for the viewer.
func (s *EventService) Dashboard(ctx context.Context, viewerID string) (*model.Dashboard, error) {
	events, err := s.load(ctx, viewerID)
	d := model.Summarize(events)
	d.CanCreateEvents = s.canPublish(ctx, viewerID)
	if err != nil {
		d.Notices = []model.Notice{model.Failure(msgLoadFailed)}
		return &d, err
	}
	return &d, nil
}

// Calendar lays out the given month with the viewer's aggregated events.
func (s *EventService) Calendar(ctx context.Context, viewerID string, year int, month time.Month) (*model.CalendarMonth, error) {
	if month < time.January || month > time.December {
		return nil, invalid("month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return nil, invalid("year is out of range")
	}

	events, err := s.load(ctx, viewerID)
	cal := model.BuildCalendar(year, month, events)
	if err != nil {
		cal.Notices = []model.Notice{model.Failure(msgLoadFailed)}
		return &cal, err
	}
	return &cal, nil
}

// refetch runs after every mutation, whatever its outcome. The mutation's
// notice comes first; werr takes precedence over a load failure.
func (s *EventService) refetch(ctx context.Context, viewerID string, notice model.Notice, werr error) (*model.Feed, error) {
	events, lerr := s.load(ctx, viewerID)
	feed := model.NewFeed(events, model.Filter{})
	feed.Notices = append(feed.Notices, notice)
	if lerr != nil {
		feed.Notices = append(feed.Notices, model.Failure(msgLoadFailed))
	}
	if werr != nil {
		return feed, werr
	}
	return feed, lerr
}

// load aggregates the full list and records it as the viewer's snapshot.
// On failure it returns the previous snapshot, or an empty list.
func (s *EventService) load(ctx context.Context, viewerID string) ([]model.Event, error) {
	events, err := s.aggregate(ctx, viewerID)
	if err == nil {
		if serr := s.snapshots.Save(ctx, viewerID, events); serr != nil {
			s.log.Warn("failed to save snapshot", zap.String("user_id", viewerID), zap.Error(serr))
		}
		return events, nil
	}

	s.log.Error("error fetching events", zap.String("user_id", viewerID), zap.Error(err))
	prior, ok, serr := s.snapshots.Load(ctx, viewerID)
	if serr != nil {
		s.log.Warn("failed to load snapshot", zap.String("user_id", viewerID), zap.Error(serr))
	}
	if !ok || prior == nil {
		prior = []model.Event{}
	}
	return prior, fmt.Errorf("%w: %w", ErrLoadEvents, err)
}

func (s *EventService) aggregate(ctx context.Context, viewerID string) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	registered, err := s.registeredIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.countRegistrations(ctx, events); err != nil {
		return nil, err
	}
	decorate(events, registered, viewerID != "")
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

func (s *EventService) registeredIDs(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	registered := make(map[string]struct{})
	if viewerID == "" {
		return registered, nil
	}
	ids, err := s.registrations.EventIDsByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		registered[id] = struct{}{}
	}
	return registered, nil
}

// countRegistrations issues one count query per event.
func (s *EventService) countRegistrations(ctx context.Context, events []model.Event) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countConcurrency)
	for i := range events {
		g.Go(func() error {
			n, err := s.registrations.CountByEvent(gctx, events[i].ID)
			if err != nil {
				return err
			}
			events[i].Registrations = n
			return nil
		})
	}
	return g.Wait()
}

// requirePublisher rejects participants. A viewer without a profile row is
// let through.
func (s *EventService) requirePublisher(ctx context.Context, viewerID string) error {
	profile, err := s.profiles.GetByUserID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get profile: %w", err)
	}
	if !profile.Role.CanPublish() {
		return ErrForbidden
	}
	return nil
}

func (s *EventService) canPublish(ctx context.Context, viewerID string) bool {
	if viewerID == "" {
		return false
	}
	if err := s.requirePublisher(ctx, viewerID); err != nil {
		if !errors.Is(err, ErrForbidden) {
			s.log.Warn("failed to load profile", zap.String("user_id", viewerID), zap.Error(err))
		}
		return false
	}
	return true
}

func decorate(events []model.Event, registered map[string]struct{}, signedIn bool) {
	for i := range events {
		_, events[i].IsRegistered = registered[events[i].ID]
		a := model.ActionFor(&events[i], signedIn)
		events[i].Action = &a
	}
}

func registrationFailure(err error) string {
	switch {
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return msgAlreadyRegistered
	case errors.Is(err, repository.ErrNotFound):
		return msgEventNotFound
	}
	return "Failed to register for event"
}

// newEvent validates req and builds the event to insert.
func newEvent(req model.CreateEventRequest) (*model.Event, error) {
	e := &model.Event{
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		Date:             strings.TrimSpace(req.Date),
		Time:             strings.TrimSpace(req.Time),
		Location:         strings.TrimSpace(req.Location),
		Category:         req.Category,
		MaxRegistrations: req.MaxRegistrations,
		Status:           req.Status,
	}

	switch {
	case e.Title == "":
		return nil, invalid("title is required")
	case e.Location == "":
		return nil, invalid("location is required")
	case !model.ValidCategory(e.Category):
		return nil, invalid("category must be one of " + strings.Join(model.Categories, ", "))
	case e.MaxRegistrations < 0:
		return nil, invalid("max_registrations must be a positive integer")
	case e.MaxRegistrations > 100_000:
		return nil, invalid("max_registrations cannot exceed 100,000")
	}
	if _, err := time.Parse(model.DateLayout, e.Date); err != nil {
		return nil, invalid("date must be formatted YYYY-MM-DD")
	}
	clock, err := time.Parse(model.TimeLayout, e.Time)
	if err != nil {
		return nil, invalid("time must be formatted HH:MM")
	}
	// AdvanceStatuses compares times as zero-padded text.
	e.Time = clock.Format(model.TimeLayout)

	if e.MaxRegistrations == 0 {
		e.MaxRegistrations = model.DefaultMaxRegistrations
	}
	if e.Status == "" {
		e.Status = model.StatusUpcoming
	}
	if !e.Status.Valid() {
		return nil, invalid("status must be upcoming, ongoing or completed")
	}
	return e, nil
}

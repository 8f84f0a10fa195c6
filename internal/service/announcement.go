package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

var (
	noticeAnnouncementCreated = model.Notice{
		Title:       "Announcement created",
		Description: "Your announcement has been posted successfully",
	}
	noticeAnnouncementDeleted = model.Notice{
		Title:       "Announcement deleted",
		Description: "The announcement has been removed",
	}
)

// AnnouncementFeed is the board returned after listing or changing announcements.
type AnnouncementFeed struct {
	Notices       []model.Notice       `json:"notices"`
	Announcements []model.Announcement `json:"announcements"`
}

// AnnouncementService manages the announcements board.
type AnnouncementService struct {
	announcements repository.AnnouncementStore
	profiles      repository.ProfileStore
	log           *zap.Logger
	markdown      goldmark.Markdown
	policy        *bluemonday.Policy
}

// NewAnnouncementService constructs an AnnouncementService.
func NewAnnouncementService(announcements repository.AnnouncementStore, profiles repository.ProfileStore, log *zap.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		profiles:      profiles,
		log:           log,
		markdown:      goldmark.New(),
		policy:        bluemonday.UGCPolicy(),
	}
}

// List returns announcements newest first with rendered content.
func (s *AnnouncementService) List(ctx context.Context) (*AnnouncementFeed, error) {
	list, err := s.announcements.List(ctx)
	if err != nil {
		s.log.Error("error fetching announcements", zap.Error(err))
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	if list == nil {
		list = []model.Announcement{}
	}
	for i := range list {
		list[i].ContentHTML = s.render(list[i].Content)
	}
	return &AnnouncementFeed{Notices: []model.Notice{}, Announcements: list}, nil
}

// Create posts an announcement as the viewer and returns the refreshed board.
func (s *AnnouncementService) Create(ctx context.Context, viewerID string, req model.CreateAnnouncementRequest) (*AnnouncementFeed, error) {
	if viewerID == "" {
		return nil, ErrUnauthenticated
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, &ValidationError{Title: "Missing fields", Message: "Please fill in both title and content"}
	}

	profile, err := s.profiles.GetByUserID(ctx, viewerID)
	switch {
	case err == nil && !profile.Role.CanPublish():
		return nil, ErrForbidden
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("get profile: %w", err)
	}

	a := &model.Announcement{Title: title, Content: content, CreatedBy: viewerID}
	if err := s.announcements.Create(ctx, a); err != nil {
		s.log.Error("error creating announcement", zap.String("user_id", viewerID), zap.Error(err))
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return s.refresh(ctx, noticeAnnouncementCreated)
}

// Delete removes an announcement. Only its creator may delete it.
func (s *AnnouncementService) Delete(ctx context.Context, viewerID, id string) (*AnnouncementFeed, error) {
	if viewerID == "" {
		return nil, ErrUnauthenticated
	}

	a, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if a.CreatedBy != viewerID {
		return nil, ErrForbidden
	}

	if err := s.announcements.Delete(ctx, id); err != nil {
		s.log.Error("error deleting announcement", zap.String("announcement_id", id), zap.Error(err))
		return nil, fmt.Errorf("delete announcement: %w", err)
	}
	return s.refresh(ctx, noticeAnnouncementDeleted)
}

func (s *AnnouncementService) refresh(ctx context.Context, notice model.Notice) (*AnnouncementFeed, error) {
	feed, err := s.List(ctx)
	if err != nil {
		return &AnnouncementFeed{
			Notices:       []model.Notice{notice, model.Failure("Failed to load announcements")},
			Announcements: []model.Announcement{},
		}, nil
	}
	feed.Notices = append(feed.Notices, notice)
	return feed, nil
}

// render converts Markdown to sanitized HTML. Content that fails to render
// is escaped as plain text.
func (s *AnnouncementService) render(content string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(content), &buf); err != nil {
		s.log.Warn("failed to render announcement", zap.Error(err))
		return s.policy.Sanitize(content)
	}
	return string(s.policy.SanitizeBytes(buf.Bytes()))
}

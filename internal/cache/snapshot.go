package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
)

// anonymousViewer keys the snapshot of signed-out visitors.
const anonymousViewer = "anonymous"

// Snapshots stores one aggregated event list per viewer. Saves overwrite,
// so concurrent fetches resolve to whichever response is written last.
type Snapshots struct {
	cache Cache
	ttl   time.Duration
}

// NewSnapshots wraps a Cache. A zero ttl defers to the cache default.
func NewSnapshots(c Cache, ttl time.Duration) *Snapshots {
	return &Snapshots{cache: c, ttl: ttl}
}

func snapshotKey(viewerID string) string {
	if viewerID == "" {
		viewerID = anonymousViewer
	}
	return "snapshot:" + viewerID
}

// Save records events as the viewer's latest good state.
func (s *Snapshots) Save(ctx context.Context, viewerID string, events []model.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.cache.Set(ctx, snapshotKey(viewerID), data, s.ttl)
}

// Load returns the viewer's latest good state. ok is false when there is none.
func (s *Snapshots) Load(ctx context.Context, viewerID string) (events []model.Event, ok bool, err error) {
	data, err := s.cache.Get(ctx, snapshotKey(viewerID))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return events, true, nil
}

// Forget drops the viewer's snapshot, e.g. on sign-out.
func (s *Snapshots) Forget(ctx context.Context, viewerID string) error {
	return s.cache.Delete(ctx, snapshotKey(viewerID))
}

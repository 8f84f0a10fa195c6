// Package scheduler advances event statuses as their dates pass.
package scheduler

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// EveryMinute is the default cron spec.
const EveryMinute = "* * * * *"

// Scheduler runs the status job on a cron schedule in the school's timezone.
type Scheduler struct {
	events repository.StatusAdvancer
	cron   *cron.Cron
	loc    *time.Location
	log    *zap.Logger
	now    func() time.Time
}

// New creates a scheduler. A nil location means UTC.
func New(events repository.StatusAdvancer, loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		events: events,
		cron:   cron.New(cron.WithLocation(loc)),
		loc:    loc,
		log:    log,
		now:    time.Now,
	}
}

// Start registers the status job and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.Tick(ctx); err != nil {
			s.log.Error("failed to advance event statuses", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())), zap.String("timezone", s.loc.String()))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// Tick advances statuses as of the current local date and time.
func (s *Scheduler) Tick(ctx context.Context) (int64, error) {
	local := s.now().In(s.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	clock := local.Format(model.TimeLayout)

	changed, err := s.events.AdvanceStatuses(ctx, today, clock)
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		s.log.Info("advanced event statuses",
			zap.Int64("changed", changed),
			zap.String("date", today.Format(model.DateLayout)),
			zap.String("time", clock),
		)
	}
	return changed, nil
}

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/daylight/internal/solar"
)

// Overviewer computes the day-over-day and week-over-week comparisons for a location.
type Overviewer interface {
	Overview(ctx context.Context, loc solar.Location, date time.Time) (day, week solar.Comparison)
}

// Scheduler periodically precomputes comparisons for configured locations so
// that the observations they need are already cached when asked for.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Overviewer
	locations []solar.Location
	interval  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a new Scheduler.
func New(locations []solar.Location, interval time.Duration, service Overviewer, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = time.Hour
	}

	_, err := s.scheduler.Every(interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce warms the cache for every location concurrently and waits for all of them.
func (s *Scheduler) RunOnce() {
	s.logger.Debug("scheduler: running warm-up job")
	now := s.now()

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			day, week := s.service.Overview(ctx, loc, now)
			s.logger.Info("daylight summary",
				zap.String("location", loc.Name),
				zap.String("date", day.Current.Date),
				zap.String("sunrise", day.Current.SunriseText()),
				zap.String("sunset", day.Current.SunsetText()),
				zap.String("day_length", day.Current.DayLengthText()),
				zap.String("vs_yesterday", day.Summary()),
				zap.String("vs_last_week", week.Summary()))
		}()
	}
	wg.Wait()
	s.logger.Debug("scheduler: completed warm-up job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

package solar

import (
	"context"
	"errors"
	"time"

	"cloudeng.io/sync/errgroup"
	"go.uber.org/zap"
)

// Service fetches observations through a Source, caches them, and compares days.
type Service struct {
	cache  Cache
	source Source
	logger *zap.Logger
}

// NewService creates a new Service. A nil logger discards log output.
func NewService(cache Cache, source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:  cache,
		source: source,
		logger: logger,
	}
}

// Observe returns the observation for loc on the calendar day containing date
// in the location's zone. It never fails: any fetch problem is recorded, cached
// and returned as an unknown observation.
//
// The fetch itself is not bound to ctx's cancellation. If ctx is done before
// the fetch completes, Observe returns an uncached unknown observation and the
// fetch carries on in the background to populate the cache.
func (s *Service) Observe(ctx context.Context, loc Location, date time.Time) Observation {
	return s.observe(ctx, loc, loc.TZ(), date)
}

func (s *Service) observe(ctx context.Context, loc Location, tz *time.Location, date time.Time) Observation {
	key := CacheKey{LocationID: loc.ID, Date: DateKey(date, tz)}

	if obs, ok := s.cache.Get(key); ok {
		return obs
	}

	done := make(chan Observation, 1)
	go func() {
		done <- s.fetchAndStore(context.WithoutCancel(ctx), loc, key, tz)
	}()

	select {
	case obs := <-done:
		return obs
	case <-ctx.Done():
		s.logger.Debug("observe abandoned; fetch continues in background",
			zap.String("location", loc.Key()),
			zap.String("date", key.Date),
			zap.Error(ctx.Err()))
		return UnknownObservation(key.Date, tz)
	}
}

func (s *Service) fetchAndStore(ctx context.Context, loc Location, key CacheKey, tz *time.Location) Observation {
	var obs Observation
	times, err := s.source.Fetch(ctx, loc, key.Date)
	if err != nil {
		s.logger.Warn("solar data unavailable; caching empty observation",
			zap.String("source", s.source.Name()),
			zap.String("location", loc.Key()),
			zap.String("name", loc.Name),
			zap.String("date", key.Date),
			zap.String("class", failureClass(err)),
			zap.Error(err))
		obs = UnknownObservation(key.Date, tz)
	} else {
		obs = NewObservation(key.Date, times.Sunrise, times.Sunset, tz)
	}
	s.cache.Save(key, obs)
	return obs
}

func failureClass(err error) string {
	switch {
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrTimestamp):
		return "timestamp"
	case errors.Is(err, ErrNoSunEvent):
		return "no_sun_event"
	default:
		return "transport"
	}
}

// CompareDates observes date and reference concurrently and compares them.
func (s *Service) CompareDates(ctx context.Context, loc Location, date, reference time.Time) Comparison {
	obs := s.observeAll(ctx, loc, loc.TZ(), date, reference)
	return Compare(obs[0], obs[1])
}

// CompareDayOverDay compares date with the previous calendar day.
func (s *Service) CompareDayOverDay(ctx context.Context, loc Location, date time.Time) Comparison {
	return s.compareDaysBefore(ctx, loc, date, 1)
}

// CompareWeekOverWeek compares date with the same day one week earlier.
func (s *Service) CompareWeekOverWeek(ctx context.Context, loc Location, date time.Time) Comparison {
	return s.compareDaysBefore(ctx, loc, date, 7)
}

func (s *Service) compareDaysBefore(ctx context.Context, loc Location, date time.Time, n int) Comparison {
	tz := loc.TZ()
	obs := s.observeAll(ctx, loc, tz, date, daysBefore(date, tz, n))
	return Compare(obs[0], obs[1])
}

// Overview fetches date, the day before and the week before concurrently and
// returns both the day-over-day and week-over-week comparisons.
func (s *Service) Overview(ctx context.Context, loc Location, date time.Time) (day, week Comparison) {
	tz := loc.TZ()
	obs := s.observeAll(ctx, loc, tz, date, daysBefore(date, tz, 1), daysBefore(date, tz, 7))
	return Compare(obs[0], obs[1]), Compare(obs[0], obs[2])
}

// observeAll fans out one Observe per date and waits for all of them.
func (s *Service) observeAll(ctx context.Context, loc Location, tz *time.Location, dates ...time.Time) []Observation {
	out := make([]Observation, len(dates))
	var g errgroup.T
	for i, d := range dates {
		g.Go(func() error {
			out[i] = s.observe(ctx, loc, tz, d)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// daysBefore steps back n calendar days in tz, keeping the wall-clock time.
func daysBefore(date time.Time, tz *time.Location, n int) time.Time {
	return date.In(tz).AddDate(0, 0, -n)
}

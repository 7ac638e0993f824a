package solar

import (
	"context"
	"errors"
)

// Failure classes a Source reports. The Service folds all of them into a
// degraded observation; callers never see them.
var (
	ErrTransport  = errors.New("transport failure")
	ErrBadRequest = errors.New("malformed request")
	ErrStatus     = errors.New("non-OK status from data source")
	ErrTimestamp  = errors.New("unparsable timestamp")
	ErrNoSunEvent = errors.New("no sunrise or sunset on this date")
)

// Source abstracts a sunrise/sunset data source (e.g. sunrise-sunset.org or a local computation).
// date is the location-local calendar date formatted with DateLayout.
type Source interface {
	Name() string
	Fetch(ctx context.Context, loc Location, date string) (SunTimes, error)
}

// Cache is the contract the in-memory observation store must satisfy.
type Cache interface {
	Get(key CacheKey) (Observation, bool)
	Save(key CacheKey, obs Observation)
}

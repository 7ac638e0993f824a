// Package locations holds the read-only set of locations the service reports on.
// Adding, removing and persisting locations is left to whoever owns the configuration.
package locations

import (
	"errors"
	"fmt"
	"strings"

	cerrors "cloudeng.io/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/i474232898/daylight/internal/config"
	"github.com/i474232898/daylight/internal/solar"
)

var (
	// ErrNotFound is returned when no location matches the requested id.
	ErrNotFound = errors.New("location not found")

	validate = validator.New()
)

// Stockholm is used when no locations are configured.
var Stockholm = config.LocationConfig{
	Name:      "Stockholm",
	Latitude:  59.3293,
	Longitude: 18.0686,
	TimeZone:  "Europe/Stockholm",
}

// Registry is an ordered, immutable list of locations with one primary.
type Registry struct {
	locations []solar.Location
	byID      map[uuid.UUID]int
	primary   int
}

// NewRegistry validates the configured entries and assigns identities.
// Entries without a timezone are resolved through tz; tz may be nil when
// every entry names its zone. primary selects the primary location by name or
// id; the first location is used when it is empty.
func NewRegistry(entries []config.LocationConfig, primary string, tz TimezoneResolver) (*Registry, error) {
	if len(entries) == 0 {
		entries = []config.LocationConfig{Stockholm}
	}

	r := &Registry{byID: make(map[uuid.UUID]int, len(entries))}
	errs := &cerrors.M{}
	for _, e := range entries {
		loc, err := toLocation(e, tz)
		if err != nil {
			errs.Append(fmt.Errorf("location %q: %w", e.Name, err))
			continue
		}
		if _, dup := r.byID[loc.ID]; dup {
			errs.Append(fmt.Errorf("location %q: duplicate id %s", e.Name, loc.ID))
			continue
		}
		r.byID[loc.ID] = len(r.locations)
		r.locations = append(r.locations, loc)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if primary != "" {
		idx, ok := r.find(primary)
		if !ok {
			return nil, fmt.Errorf("primary location %q: %w", primary, ErrNotFound)
		}
		r.primary = idx
	}
	return r, nil
}

func toLocation(e config.LocationConfig, tz TimezoneResolver) (solar.Location, error) {
	loc := solar.Location{
		Name:      e.Name,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		TimeZone:  e.TimeZone,
	}
	if loc.TimeZone == "" && tz != nil {
		name, err := tz.TimezoneFor(e.Latitude, e.Longitude)
		if err != nil {
			return solar.Location{}, err
		}
		loc.TimeZone = name
	}
	if e.ID != "" {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return solar.Location{}, fmt.Errorf("invalid id: %w", err)
		}
		loc.ID = id
	} else {
		loc.ID = StableID(loc.Name, loc.Latitude, loc.Longitude)
	}
	if err := validate.Struct(loc); err != nil {
		return solar.Location{}, err
	}
	return loc, nil
}

// StableID derives a deterministic identity from a location's name and
// coordinates so ids survive restarts without being stored.
func StableID(name string, latitude, longitude float64) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("daylight:%s:%.4f:%.4f", name, latitude, longitude)))
}

func (r *Registry) find(nameOrID string) (int, bool) {
	if id, err := uuid.Parse(nameOrID); err == nil {
		idx, ok := r.byID[id]
		return idx, ok
	}
	for i, l := range r.locations {
		if strings.EqualFold(l.Name, nameOrID) {
			return i, true
		}
	}
	return 0, false
}

// All returns the locations in configured order.
func (r *Registry) All() []solar.Location {
	out := make([]solar.Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// ByID looks up a location by id.
func (r *Registry) ByID(id uuid.UUID) (solar.Location, error) {
	idx, ok := r.byID[id]
	if !ok {
		return solar.Location{}, ErrNotFound
	}
	return r.locations[idx], nil
}

// Primary returns the primary location.
func (r *Registry) Primary() solar.Location {
	return r.locations[r.primary]
}

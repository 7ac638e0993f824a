package locations

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"
)

// TimezoneResolver maps coordinates to an IANA timezone name.
type TimezoneResolver interface {
	TimezoneFor(latitude, longitude float64) (string, error)
}

// TZFResolver resolves timezones with tzf. The timezone polygons are large,
// so the finder is only loaded on first use.
type TZFResolver struct {
	once    sync.Once
	finder  tzf.F
	initErr error
}

// NewTZFResolver creates a lazily initialized resolver.
func NewTZFResolver() *TZFResolver {
	return &TZFResolver{}
}

func (r *TZFResolver) TimezoneFor(latitude, longitude float64) (string, error) {
	r.once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			r.initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		r.finder = finder
	})
	if r.initErr != nil {
		return "", r.initErr
	}

	name := r.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}
	return name, nil
}

package sources

import (
	"context"

	"github.com/nathan-osman/go-sunrise"

	"github.com/i474232898/daylight/internal/solar"
)

// ComputedSource implements solar.Source by computing sunrise and sunset
// locally. It needs no network access.
type ComputedSource struct{}

// NewComputedSource creates a ComputedSource.
func NewComputedSource() *ComputedSource {
	return &ComputedSource{}
}

func (ComputedSource) Name() string {
	return "computed"
}

func (ComputedSource) Fetch(ctx context.Context, loc solar.Location, date string) (solar.SunTimes, error) {
	if err := ctx.Err(); err != nil {
		return solar.SunTimes{}, err
	}
	if err := validCoordinates(loc.Latitude, loc.Longitude); err != nil {
		return solar.SunTimes{}, err
	}
	d, err := parseDate(date)
	if err != nil {
		return solar.SunTimes{}, err
	}

	// Zero times mean the sun does not rise or set (polar day or night).
	rise, set := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, d.Year(), d.Month(), d.Day())
	if rise.IsZero() || set.IsZero() {
		return solar.SunTimes{}, solar.ErrNoSunEvent
	}
	return solar.SunTimes{Sunrise: rise.UTC(), Sunset: set.UTC()}, nil
}

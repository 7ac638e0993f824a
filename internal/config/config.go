package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cerrors "cloudeng.io/errors"
	"github.com/joho/godotenv"
)

// Source names accepted by SOLAR_SOURCE.
const (
	SourceSunriseSunset = "sunrise-sunset"
	SourceComputed      = "computed"
)

// LocationConfig is one configured location before identity and timezone
// resolution.
type LocationConfig struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	TimeZone  string // may be empty; resolved from coordinates
}

type AppConfig struct {
	Port string

	// Source selects where sunrise/sunset data comes from.
	Source           string
	SunriseSunsetURL string
	HTTPTimeout      time.Duration

	// DegradedCacheTTL bounds how long "no data" observations are cached (0 = forever).
	DegradedCacheTTL time.Duration

	// WarmInterval controls how often comparisons are precomputed for every location.
	WarmInterval time.Duration

	LogLevel string

	Locations []LocationConfig
	Primary   string // location name or id
}

// Load reads configuration from the environment (and a .env file, if present)
// with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env file is not an error; the environment alone is enough.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	errs := &cerrors.M{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.Source = getenvDefault("SOLAR_SOURCE", SourceSunriseSunset)
	if cfg.Source != SourceSunriseSunset && cfg.Source != SourceComputed {
		errs.Append(fmt.Errorf("invalid SOLAR_SOURCE %q: want %q or %q", cfg.Source, SourceSunriseSunset, SourceComputed))
	}
	cfg.SunriseSunsetURL = os.Getenv("SUNRISE_SUNSET_URL")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Primary = os.Getenv("DAYLIGHT_PRIMARY")

	cfg.HTTPTimeout = getenvDuration(errs, "HTTP_TIMEOUT", "10s")
	cfg.DegradedCacheTTL = getenvDuration(errs, "DEGRADED_CACHE_TTL", "0s")
	cfg.WarmInterval = getenvDuration(errs, "WARM_INTERVAL", "1h")

	locs, err := loadLocations()
	errs.Append(err)
	cfg.Locations = locs

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadLocations reads the parallel, ';'-separated DAYLIGHT_LOCATION_* lists.
func loadLocations() ([]LocationConfig, error) {
	names := splitList(os.Getenv("DAYLIGHT_LOCATION_NAMES"))
	if len(names) == 0 {
		return nil, nil
	}
	lats := splitList(os.Getenv("DAYLIGHT_LOCATION_LATS"))
	lngs := splitList(os.Getenv("DAYLIGHT_LOCATION_LNGS"))
	tzs := splitList(os.Getenv("DAYLIGHT_LOCATION_TZS"))
	ids := splitList(os.Getenv("DAYLIGHT_LOCATION_IDS"))

	if len(lats) != len(names) || len(lngs) != len(names) {
		return nil, fmt.Errorf("number of location names, latitudes and longitudes must be the same")
	}
	if len(tzs) != 0 && len(tzs) != len(names) {
		return nil, fmt.Errorf("DAYLIGHT_LOCATION_TZS must be empty or have one entry per location")
	}
	if len(ids) != 0 && len(ids) != len(names) {
		return nil, fmt.Errorf("DAYLIGHT_LOCATION_IDS must be empty or have one entry per location")
	}

	errs := &cerrors.M{}
	locs := make([]LocationConfig, 0, len(names))
	for i := range names {
		lat, err := strconv.ParseFloat(lats[i], 64)
		if err != nil {
			errs.Append(fmt.Errorf("invalid latitude for %s: %w", names[i], err))
			continue
		}
		lng, err := strconv.ParseFloat(lngs[i], 64)
		if err != nil {
			errs.Append(fmt.Errorf("invalid longitude for %s: %w", names[i], err))
			continue
		}
		lc := LocationConfig{
			Name:      names[i],
			Latitude:  lat,
			Longitude: lng,
		}
		if len(tzs) > 0 {
			lc.TimeZone = tzs[i]
		}
		if len(ids) > 0 {
			lc.ID = ids[i]
		}
		locs = append(locs, lc)
	}
	return locs, errs.Err()
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(errs *cerrors.M, key, def string) time.Duration {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		errs.Append(fmt.Errorf("invalid %s: %w", key, err))
		return 0
	}
	return d
}

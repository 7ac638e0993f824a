package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "SOLAR_SOURCE", "SUNRISE_SUNSET_URL", "HTTP_TIMEOUT",
		"DEGRADED_CACHE_TTL", "WARM_INTERVAL", "LOG_LEVEL", "DAYLIGHT_PRIMARY",
		"DAYLIGHT_LOCATION_NAMES", "DAYLIGHT_LOCATION_LATS", "DAYLIGHT_LOCATION_LNGS",
		"DAYLIGHT_LOCATION_TZS", "DAYLIGHT_LOCATION_IDS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceSunriseSunset, cfg.Source)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Duration(0), cfg.DegradedCacheTTL)
	assert.Equal(t, time.Hour, cfg.WarmInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Locations)
}

func TestLoadLocations(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOLAR_SOURCE", SourceComputed)
	t.Setenv("DEGRADED_CACHE_TTL", "15m")
	t.Setenv("DAYLIGHT_LOCATION_NAMES", "Stockholm; Tromsø")
	t.Setenv("DAYLIGHT_LOCATION_LATS", "59.3293;69.6492")
	t.Setenv("DAYLIGHT_LOCATION_LNGS", "18.0686;18.9553")
	t.Setenv("DAYLIGHT_LOCATION_TZS", "Europe/Stockholm;")
	t.Setenv("DAYLIGHT_PRIMARY", "Tromsø")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceComputed, cfg.Source)
	assert.Equal(t, 15*time.Minute, cfg.DegradedCacheTTL)
	assert.Equal(t, "Tromsø", cfg.Primary)
	assert.Equal(t, []LocationConfig{
		{Name: "Stockholm", Latitude: 59.3293, Longitude: 18.0686, TimeZone: "Europe/Stockholm"},
		{Name: "Tromsø", Latitude: 69.6492, Longitude: 18.9553},
	}, cfg.Locations)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown source":    {"SOLAR_SOURCE": "almanac"},
		"bad duration":      {"HTTP_TIMEOUT": "soon"},
		"mismatched lists":  {"DAYLIGHT_LOCATION_NAMES": "A;B", "DAYLIGHT_LOCATION_LATS": "1", "DAYLIGHT_LOCATION_LNGS": "1;2"},
		"mismatched ids":    {"DAYLIGHT_LOCATION_NAMES": "A", "DAYLIGHT_LOCATION_LATS": "1", "DAYLIGHT_LOCATION_LNGS": "1", "DAYLIGHT_LOCATION_IDS": "x;y"},
		"unparsable number": {"DAYLIGHT_LOCATION_NAMES": "A", "DAYLIGHT_LOCATION_LATS": "north", "DAYLIGHT_LOCATION_LNGS": "1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOLAR_SOURCE", "almanac")
	t.Setenv("WARM_INTERVAL", "often")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOLAR_SOURCE")
	assert.Contains(t, err.Error(), "WARM_INTERVAL")
}

package locations

import (
	"errors"
	"testing"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/daylight/internal/config"
)

type staticResolver struct {
	name  string
	err   error
	calls int
}

func (r *staticResolver) TimezoneFor(_, _ float64) (string, error) {
	r.calls++
	return r.name, r.err
}

func TestNewRegistryDefaultsToStockholm(t *testing.T) {
	r, err := NewRegistry(nil, "", nil)
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Stockholm", all[0].Name)
	assert.Equal(t, "Europe/Stockholm", all[0].TimeZone)
	assert.Equal(t, all[0], r.Primary())

	got, err := r.ByID(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0], got)
}

func TestStableID(t *testing.T) {
	a := StableID("Stockholm", 59.3293, 18.0686)
	assert.Equal(t, a, StableID("Stockholm", 59.3293, 18.0686))
	assert.NotEqual(t, a, StableID("Stockholm", 59.33, 18.0686))
	assert.NotEqual(t, a, StableID("Sthlm", 59.3293, 18.0686))

	r1, err := NewRegistry(nil, "", nil)
	require.NoError(t, err)
	r2, err := NewRegistry(nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, r1.Primary().ID, r2.Primary().ID)
}

func TestNewRegistryPrimaryAndLookup(t *testing.T) {
	id := uuid.MustParse("0b8e4f0c-8a1b-5c3d-9e2f-1a2b3c4d5e6f")
	entries := []config.LocationConfig{
		Stockholm,
		{ID: id.String(), Name: "Reykjavik", Latitude: 64.1466, Longitude: -21.9426, TimeZone: "Atlantic/Reykjavik"},
	}

	r, err := NewRegistry(entries, "reykjavik", nil)
	require.NoError(t, err)
	assert.Equal(t, id, r.Primary().ID)

	r, err = NewRegistry(entries, id.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Reykjavik", r.Primary().Name)

	_, err = NewRegistry(entries, "Oslo", nil)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = r.ByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	// All returns a copy.
	all := r.All()
	all[0].Name = "changed"
	assert.Equal(t, "Stockholm", r.All()[0].Name)
}

func TestNewRegistryResolvesMissingTimezone(t *testing.T) {
	resolver := &staticResolver{name: "Europe/Oslo"}
	entries := []config.LocationConfig{
		{Name: "Tromsø", Latitude: 69.6492, Longitude: 18.9553},
		Stockholm,
	}

	r, err := NewRegistry(entries, "", resolver)
	require.NoError(t, err)
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, "Europe/Oslo", r.All()[0].TimeZone)
	assert.Equal(t, "Europe/Stockholm", r.All()[1].TimeZone)

	_, err = NewRegistry(entries[:1], "", &staticResolver{err: errors.New("no zone")})
	assert.Error(t, err)
}

func TestNewRegistryRejectsInvalidEntries(t *testing.T) {
	tests := map[string]config.LocationConfig{
		"latitude":  {Name: "North", Latitude: 95, Longitude: 0, TimeZone: "UTC"},
		"longitude": {Name: "East", Latitude: 0, Longitude: 181, TimeZone: "UTC"},
		"timezone":  {Name: "Nowhere", Latitude: 0, Longitude: 0, TimeZone: "Mars/Olympus"},
		"no zone":   {Name: "Unzoned", Latitude: 0, Longitude: 0},
		"name":      {Latitude: 0, Longitude: 0, TimeZone: "UTC"},
		"id":        {ID: "not-a-uuid", Name: "Bad", Latitude: 0, Longitude: 0, TimeZone: "UTC"},
	}
	for name, entry := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegistry([]config.LocationConfig{entry}, "", nil)
			assert.Error(t, err)
		})
	}

	_, err := NewRegistry([]config.LocationConfig{Stockholm, Stockholm}, "", nil)
	assert.ErrorContains(t, err, "duplicate")
}

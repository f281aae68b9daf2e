package session

import (
	"context"
	"testing"

	"halvi-backend/internal/geo"
	"halvi-backend/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	place *geo.Place
	err   error
}

func (s *stubGeocoder) Reverse(ctx context.Context, latitude, longitude float64) (*geo.Place, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.place, nil
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRequestLocationSuccess(t *testing.T) {
	kv := storage.NewMemoryKV()
	geocoder := &stubGeocoder{place: &geo.Place{City: "Riyadh", State: "Riyadh Province", Country: "Saudi Arabia"}}
	p := NewLocationProvider(kv, geocoder, 24.7136, 46.6753, quietLog())

	state := p.Request(context.Background(), "s1", 24.71, 46.67, false)
	require.True(t, state.IsLocationEnabled)
	require.NotNil(t, state.Location)
	assert.Equal(t, "Riyadh", state.Location.City)
	assert.Equal(t, 24.71, state.Location.Latitude)

	// rehydrates from storage
	current := p.Current(context.Background(), "s1")
	assert.True(t, current.IsLocationEnabled)
	assert.Equal(t, "Riyadh", current.Location.City)
}

func TestRequestLocationDenied(t *testing.T) {
	kv := storage.NewMemoryKV()
	p := NewLocationProvider(kv, &stubGeocoder{}, 24.7136, 46.6753, quietLog())

	state := p.Request(context.Background(), "s1", 0, 0, true)
	assert.False(t, state.IsLocationEnabled)
	assert.Nil(t, state.Location)

	current := p.Current(context.Background(), "s1")
	assert.False(t, current.IsLocationEnabled)
	assert.Nil(t, current.Location)
}

func TestRequestLocationGeocoderFailure(t *testing.T) {
	kv := storage.NewMemoryKV()
	p := NewLocationProvider(kv, &stubGeocoder{err: geo.ErrUnavailable}, 24.7136, 46.6753, quietLog())

	state := p.Request(context.Background(), "s1", 24.71, 46.67, false)
	assert.False(t, state.IsLocationEnabled)
	assert.Nil(t, state.Location)
}

func TestCoordinatesFallBackToDefault(t *testing.T) {
	kv := storage.NewMemoryKV()
	p := NewLocationProvider(kv, &stubGeocoder{}, 24.7136, 46.6753, quietLog())

	lat, lng := p.Coordinates(context.Background(), "no-location")
	assert.Equal(t, 24.7136, lat)
	assert.Equal(t, 46.6753, lng)
}

func TestCoordinatesUseStoredLocation(t *testing.T) {
	kv := storage.NewMemoryKV()
	geocoder := &stubGeocoder{place: &geo.Place{City: "Jeddah"}}
	p := NewLocationProvider(kv, geocoder, 24.7136, 46.6753, quietLog())

	p.Request(context.Background(), "s1", 21.54, 39.19, false)

	lat, lng := p.Coordinates(context.Background(), "s1")
	assert.Equal(t, 21.54, lat)
	assert.Equal(t, 39.19, lng)
}

func TestCurrentCorruptStateReadsDisabled(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), storage.SessionKey(storage.KeyUserLocation, "s1"), []byte("{broken")))
	p := NewLocationProvider(kv, &stubGeocoder{}, 24.7136, 46.6753, quietLog())

	state := p.Current(context.Background(), "s1")
	assert.False(t, state.IsLocationEnabled)
	assert.Nil(t, state.Location)
}

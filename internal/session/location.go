// Package session holds the per-session state providers: location, shop
// selection, theme and language. Each provider owns one storage namespace
// and rehydrates its state from storage on demand.
package session

import (
	"context"
	"encoding/json"
	"errors"

	"halvi-backend/internal/geo"
	"halvi-backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// LocationInfo is a resolved user location.
type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
}

// LocationState is the provider's exposed state. Location is nil until a
// request succeeds.
type LocationState struct {
	IsLocationEnabled bool          `json:"is_location_enabled"`
	Location          *LocationInfo `json:"location"`
}

// LocationProvider resolves and persists the session's location. Failures
// (permission denied, geocoder unavailable, timeout) disable location for
// the session instead of surfacing an error.
type LocationProvider struct {
	kv               storage.KV
	geocoder         geo.Geocoder
	defaultLatitude  float64
	defaultLongitude float64
	log              *logrus.Logger
}

func NewLocationProvider(kv storage.KV, geocoder geo.Geocoder, defaultLat, defaultLng float64, log *logrus.Logger) *LocationProvider {
	return &LocationProvider{
		kv:               kv,
		geocoder:         geocoder,
		defaultLatitude:  defaultLat,
		defaultLongitude: defaultLng,
		log:              log,
	}
}

// Current rehydrates the stored location state. Missing or corrupt state
// reads as disabled.
func (p *LocationProvider) Current(ctx context.Context, sessionID string) LocationState {
	data, err := p.kv.Get(ctx, storage.SessionKey(storage.KeyUserLocation, sessionID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.log.WithError(err).WithField("session", sessionID).Warn("failed to load location state")
		}
		return LocationState{}
	}

	var state LocationState
	if err := json.Unmarshal(data, &state); err != nil {
		p.log.WithError(err).WithField("session", sessionID).Warn("corrupt location state in storage")
		return LocationState{}
	}
	return state
}

// Request resolves the reported coordinates to a place and persists the
// result. denied marks an explicit permission refusal by the client. On
// any failure the session's location is disabled and no error is returned.
func (p *LocationProvider) Request(ctx context.Context, sessionID string, latitude, longitude float64, denied bool) LocationState {
	if denied {
		return p.disable(ctx, sessionID)
	}

	place, err := p.geocoder.Reverse(ctx, latitude, longitude)
	if err != nil {
		p.log.WithError(err).WithField("session", sessionID).Warn("location lookup failed, disabling location")
		return p.disable(ctx, sessionID)
	}

	state := LocationState{
		IsLocationEnabled: true,
		Location: &LocationInfo{
			Latitude:  latitude,
			Longitude: longitude,
			City:      place.City,
			State:     place.State,
			Country:   place.Country,
		},
	}
	p.persist(ctx, sessionID, state)
	return state
}

// Coordinates returns the session's coordinates, falling back to the
// configured default when no location is stored.
func (p *LocationProvider) Coordinates(ctx context.Context, sessionID string) (float64, float64) {
	state := p.Current(ctx, sessionID)
	if state.IsLocationEnabled && state.Location != nil {
		return state.Location.Latitude, state.Location.Longitude
	}
	return p.defaultLatitude, p.defaultLongitude
}

func (p *LocationProvider) disable(ctx context.Context, sessionID string) LocationState {
	state := LocationState{IsLocationEnabled: false, Location: nil}
	p.persist(ctx, sessionID, state)
	return state
}

func (p *LocationProvider) persist(ctx context.Context, sessionID string, state LocationState) {
	data, err := json.Marshal(state)
	if err != nil {
		p.log.WithError(err).Warn("failed to encode location state")
		return
	}
	if err := p.kv.Set(ctx, storage.SessionKey(storage.KeyUserLocation, sessionID), data); err != nil {
		p.log.WithError(err).WithField("session", sessionID).Warn("failed to persist location state")
	}
}

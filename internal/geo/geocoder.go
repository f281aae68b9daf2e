// Package geo wraps the reverse-geocoding service used to turn coordinates
// into a city/state/country triple for the location provider.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrUnavailable covers every upstream failure mode (network error,
// timeout, non-200, unparseable body). Callers degrade to a disabled
// location state instead of branching on the cause.
var ErrUnavailable = errors.New("geocoder unavailable")

// Place is a resolved location.
type Place struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Geocoder resolves coordinates to a place.
type Geocoder interface {
	Reverse(ctx context.Context, latitude, longitude float64) (*Place, error)
}

// Client is a Geocoder talking to a Nominatim-compatible endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type reverseResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Reverse looks up the place for the given coordinates.
func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (*Place, error) {
	endpoint := fmt.Sprintf("%s/reverse?%s", c.baseURL, url.Values{
		"lat":    {fmt.Sprintf("%f", latitude)},
		"lon":    {fmt.Sprintf("%f", longitude)},
		"format": {"json"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", "halvi-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	city := decoded.Address.City
	if city == "" {
		city = decoded.Address.Town
	}
	if city == "" {
		city = decoded.Address.Village
	}

	return &Place{
		City:    city,
		State:   decoded.Address.State,
		Country: decoded.Address.Country,
	}, nil
}

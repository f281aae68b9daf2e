package assetcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"
)

// Fetcher retrieves cacheable paths from the asset origin and forwards
// requests that must reach it unmodified.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*Entry, error)
	// Forward relays the request to the origin with its method, headers
	// and body intact.
	Forward(w http.ResponseWriter, r *http.Request)
}

// OriginFetcher fetches from the configured same-origin asset host.
type OriginFetcher struct {
	origin     string
	httpClient *http.Client
	proxy      http.Handler
}

func NewOriginFetcher(origin string) *OriginFetcher {
	f := &OriginFetcher{
		origin: origin,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	if target, err := url.Parse(origin); err == nil && target.Host != "" {
		f.proxy = httputil.NewSingleHostReverseProxy(target)
	}
	return f
}

func (f *OriginFetcher) Fetch(ctx context.Context, path string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.origin+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build origin request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &Entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}, nil
}

func (f *OriginFetcher) Forward(w http.ResponseWriter, r *http.Request) {
	if f.proxy == nil {
		http.Error(w, "origin unreachable", http.StatusBadGateway)
		return
	}
	f.proxy.ServeHTTP(w, r)
}

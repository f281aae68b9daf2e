package assetcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	entries map[string]*Entry
	fail    bool
	fetched []string

	// last request relayed through Forward
	forwardedMethod string
	forwardedBody   string
}

func (s *stubFetcher) Fetch(ctx context.Context, path string) (*Entry, error) {
	s.fetched = append(s.fetched, path)
	if s.fail {
		return nil, fmt.Errorf("network down")
	}
	entry, ok := s.entries[path]
	if !ok {
		return &Entry{Status: http.StatusNotFound, Header: http.Header{}, Body: []byte("not found")}, nil
	}
	return entry.clone(), nil
}

func (s *stubFetcher) Forward(w http.ResponseWriter, r *http.Request) {
	s.forwardedMethod = r.Method
	if r.Body != nil {
		body, _ := io.ReadAll(r.Body)
		s.forwardedBody = string(body)
	}
	if s.fail {
		http.Error(w, "origin unreachable", http.StatusBadGateway)
		return
	}
	entry, ok := s.entries[r.URL.RequestURI()]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(entry.Status)
	w.Write(entry.Body)
}

func entry(body string) *Entry {
	return &Entry{Status: http.StatusOK, Header: http.Header{"Content-Type": {"text/plain"}}, Body: []byte(body)}
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestCache(fetcher *stubFetcher, precache ...string) *Cache {
	return New(Config{
		Version:  "halvi-cache-v2",
		Origin:   fetcher,
		Precache: precache,
		Log:      quietLog(),
	})
}

func TestInstallPrecachesAllAssets(t *testing.T) {
	fetcher := &stubFetcher{entries: map[string]*Entry{
		"/":             entry("shell"),
		"/offline.html": entry("offline"),
	}}
	c := newTestCache(fetcher, "/", "/offline.html")

	require.NoError(t, c.Install(context.Background()))
	assert.NotNil(t, c.lookup("/"))
	assert.NotNil(t, c.lookup("/offline.html"))
}

func TestInstallFailsWhenAnyAssetFails(t *testing.T) {
	fetcher := &stubFetcher{entries: map[string]*Entry{
		"/": entry("shell"),
		// /missing.js resolves to a 404
	}}
	c := newTestCache(fetcher, "/", "/missing.js")

	err := c.Install(context.Background())
	require.Error(t, err)
	assert.Nil(t, c.lookup("/"), "a failed install must not commit partial state")
}

func TestActivateDeletesStaleVersions(t *testing.T) {
	fetcher := &stubFetcher{entries: map[string]*Entry{"/": entry("shell")}}
	c := newTestCache(fetcher, "/")
	c.seed("halvi-cache-v1", "/", entry("old shell"))

	require.NoError(t, c.Install(context.Background()))
	require.NoError(t, c.Activate(context.Background()))

	assert.Equal(t, []string{"halvi-cache-v2"}, c.CacheNames())
}

func TestActivateRequiresInstall(t *testing.T) {
	c := newTestCache(&stubFetcher{entries: map[string]*Entry{}})
	assert.Error(t, c.Activate(context.Background()))
}

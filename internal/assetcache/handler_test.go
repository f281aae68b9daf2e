package assetcache

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installedCache(t *testing.T, fetcher *stubFetcher) *Cache {
	t.Helper()
	c := newTestCache(fetcher, "/offline.html", "/images/placeholder.png")
	require.NoError(t, c.Install(context.Background()))
	require.NoError(t, c.Activate(context.Background()))
	return c
}

func offlineFetcher() *stubFetcher {
	return &stubFetcher{entries: map[string]*Entry{
		"/offline.html":           entry("offline page"),
		"/images/placeholder.png": entry("placeholder"),
	}}
}

func TestNonGETPassesThrough(t *testing.T) {
	fetcher := offlineFetcher()
	fetcher.entries["/api/cart/add"] = entry("added")
	c := installedCache(t, fetcher)

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cart/add", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "added", rec.Body.String())
	assert.Nil(t, c.lookup("/api/cart/add"), "pass-through responses are never cached")
}

func TestPassThroughKeepsMethodAndBody(t *testing.T) {
	fetcher := offlineFetcher()
	fetcher.entries["/contact"] = entry("received")
	c := installedCache(t, fetcher)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"message":"hi"}`))
	c.ServeHTTP(rec, req)

	assert.Equal(t, http.MethodPost, fetcher.forwardedMethod)
	assert.Equal(t, `{"message":"hi"}`, fetcher.forwardedBody)
	assert.NotContains(t, fetcher.fetched, "/contact", "forwarded requests never go through Fetch")
}

func TestOriginFetcherForwardProxiesRequest(t *testing.T) {
	var gotMethod, gotBody string
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer origin.Close()

	f := NewOriginFetcher(origin.URL)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"message":"hi"}`))
	f.Forward(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, `{"message":"hi"}`, gotBody)
}

func TestAPIRequestNetworkFirst(t *testing.T) {
	fetcher := offlineFetcher()
	fetcher.entries["/api/products"] = entry(`{"products":[]}`)
	c := installedCache(t, fetcher)

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.lookup("/api/products"), "API responses are not cached")
}

func TestAPIRequestFailureServesOfflinePage(t *testing.T) {
	c := installedCache(t, offlineFetcher())

	fetcher := c.origin.(*stubFetcher)
	fetcher.fail = true

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "offline page", rec.Body.String())
}

func navigationRequest(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	return req
}

func TestNavigationCachesSuccessfulResponse(t *testing.T) {
	fetcher := offlineFetcher()
	fetcher.entries["/shops"] = entry("<html>shops</html>")
	c := installedCache(t, fetcher)

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, navigationRequest("/shops"))
	assert.Equal(t, http.StatusOK, rec.Code)

	// network goes away; the cached copy serves the same page
	fetcher.fail = true
	rec = httptest.NewRecorder()
	c.ServeHTTP(rec, navigationRequest("/shops"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>shops</html>", rec.Body.String())
}

func TestNavigationFailureWithoutCachedCopyServesOffline(t *testing.T) {
	c := installedCache(t, offlineFetcher())
	c.origin.(*stubFetcher).fail = true

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, navigationRequest("/never-visited"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "offline page", rec.Body.String())
}

func TestStaticAssetCacheFirst(t *testing.T) {
	fetcher := offlineFetcher()
	fetcher.entries["/app.js"] = entry("console.log(1)")
	c := installedCache(t, fetcher)

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	fetchesAfterMiss := len(fetcher.fetched)

	// second hit is served from cache without touching the origin
	rec = httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, "console.log(1)", rec.Body.String())
	assert.Equal(t, fetchesAfterMiss, len(fetcher.fetched))
}

func TestStaticAssetNon200NotCached(t *testing.T) {
	fetcher := offlineFetcher()
	c := installedCache(t, fetcher)

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gone.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, c.lookup("/gone.css"))
}

func TestImageFailureServesPlaceholder(t *testing.T) {
	c := installedCache(t, offlineFetcher())
	c.origin.(*stubFetcher).fail = true

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/shop-logo.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "placeholder", rec.Body.String())
}

func TestNonImageFailurePropagates(t *testing.T) {
	c := installedCache(t, offlineFetcher())
	c.origin.(*stubFetcher).fail = true

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendor.js", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

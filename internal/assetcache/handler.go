package assetcache

import (
	"net/http"
	"path"
	"strings"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".ico":  true,
}

// ServeHTTP applies the fetch policy:
//   - non-GET requests pass through to the origin uncached,
//   - API paths are network-first with the offline page as fallback,
//   - navigation requests are network-first, caching successful responses,
//     then falling back to the cached copy, then the offline page,
//   - everything else is cache-first; misses are fetched and 200 responses
//     stored; on total failure image requests get the placeholder and the
//     rest propagate the failure.
func (c *Cache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		c.passThrough(w, r)
		return
	}

	switch {
	case isAPIRequest(r):
		c.networkFirst(w, r, false)
	case isNavigationRequest(r):
		c.networkFirst(w, r, true)
	default:
		c.cacheFirst(w, r)
	}
}

// passThrough relays the request as-is. Method and body must survive, so
// this never goes through Fetch.
func (c *Cache) passThrough(w http.ResponseWriter, r *http.Request) {
	c.origin.Forward(w, r)
}

func (c *Cache) networkFirst(w http.ResponseWriter, r *http.Request, storeOnSuccess bool) {
	requestPath := r.URL.RequestURI()

	entry, err := c.origin.Fetch(r.Context(), requestPath)
	if err == nil {
		if storeOnSuccess && entry.Status == http.StatusOK {
			c.store(requestPath, entry)
		}
		writeEntry(w, entry)
		return
	}

	c.log.WithError(err).WithField("path", requestPath).Debug("network fetch failed, falling back to cache")

	if storeOnSuccess {
		if cached := c.lookup(requestPath); cached != nil {
			writeEntry(w, cached)
			return
		}
	}

	c.serveOffline(w)
}

func (c *Cache) cacheFirst(w http.ResponseWriter, r *http.Request) {
	requestPath := r.URL.RequestURI()

	if cached := c.lookup(requestPath); cached != nil {
		writeEntry(w, cached)
		return
	}

	entry, err := c.origin.Fetch(r.Context(), requestPath)
	if err == nil {
		if entry.Status == http.StatusOK {
			c.store(requestPath, entry)
		}
		writeEntry(w, entry)
		return
	}

	if imageExtensions[strings.ToLower(path.Ext(r.URL.Path))] {
		if placeholder := c.lookup(c.placeholderPath); placeholder != nil {
			writeEntry(w, placeholder)
			return
		}
	}

	http.Error(w, "asset unavailable", http.StatusBadGateway)
}

func (c *Cache) serveOffline(w http.ResponseWriter) {
	if offline := c.lookup(c.offlinePath); offline != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write(offline.Body)
		return
	}
	http.Error(w, "offline", http.StatusServiceUnavailable)
}

func writeEntry(w http.ResponseWriter, entry *Entry) {
	for key, values := range entry.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(entry.Status)
	w.Write(entry.Body)
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

func isNavigationRequest(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

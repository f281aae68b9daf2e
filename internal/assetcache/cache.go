// Package assetcache serves the web shell through a versioned asset cache
// with an install/activate lifecycle: install precaches the shell assets
// under the current version, activate deletes every cache version that is
// not current, and fetch handling applies a request-class dependent policy
// (network-first for API and navigation requests, cache-first for static
// assets) with offline fallbacks.
package assetcache

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
)

// Entry is one cached response.
type Entry struct {
	Status int
	Header http.Header
	Body   []byte
}

func (e *Entry) clone() *Entry {
	body := make([]byte, len(e.Body))
	copy(body, e.Body)
	return &Entry{Status: e.Status, Header: e.Header.Clone(), Body: body}
}

// Cache holds versioned response caches. Exactly one version is live at a
// time; Activate removes the rest.
type Cache struct {
	version         string
	origin          Fetcher
	precache        []string
	offlinePath     string
	placeholderPath string
	log             *logrus.Logger

	mu        sync.RWMutex
	caches    map[string]map[string]*Entry
	installed bool
	activated bool
}

type Config struct {
	Version         string
	Origin          Fetcher
	Precache        []string
	OfflinePath     string
	PlaceholderPath string
	Log             *logrus.Logger
}

func New(cfg Config) *Cache {
	offline := cfg.OfflinePath
	if offline == "" {
		offline = "/offline.html"
	}
	placeholder := cfg.PlaceholderPath
	if placeholder == "" {
		placeholder = "/images/placeholder.png"
	}

	return &Cache{
		version:         cfg.Version,
		origin:          cfg.Origin,
		precache:        cfg.Precache,
		offlinePath:     offline,
		placeholderPath: placeholder,
		log:             cfg.Log,
		caches:          make(map[string]map[string]*Entry),
	}
}

// Install fetches every precache asset and stores it under the current
// version. Any single fetch failure fails the whole install and commits
// nothing.
func (c *Cache) Install(ctx context.Context) error {
	staged := make(map[string]*Entry, len(c.precache))
	for _, path := range c.precache {
		entry, err := c.origin.Fetch(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to precache %s: %w", path, err)
		}
		if entry.Status != http.StatusOK {
			return fmt.Errorf("failed to precache %s: status %d", path, entry.Status)
		}
		staged[path] = entry
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.caches[c.version] == nil {
		c.caches[c.version] = make(map[string]*Entry)
	}
	for path, entry := range staged {
		c.caches[c.version][path] = entry
	}
	c.installed = true

	c.log.WithFields(logrus.Fields{"version": c.version, "assets": len(staged)}).Info("asset cache installed")
	return nil
}

// Activate deletes every cache whose name is not the current version and
// starts handling fetches immediately.
func (c *Cache) Activate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.installed {
		return fmt.Errorf("cannot activate before install")
	}

	for name := range c.caches {
		if name != c.version {
			delete(c.caches, name)
			c.log.WithField("cache", name).Info("deleted stale asset cache")
		}
	}
	c.activated = true
	return nil
}

// CacheNames lists the stored cache versions.
func (c *Cache) CacheNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.caches))
	for name := range c.caches {
		names = append(names, name)
	}
	return names
}

// Version returns the live cache name.
func (c *Cache) Version() string {
	return c.version
}

// seed stores an entry under an arbitrary cache name. Used by tests to
// model leftover caches from previous versions.
func (c *Cache) seed(cacheName, path string, entry *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.caches[cacheName] == nil {
		c.caches[cacheName] = make(map[string]*Entry)
	}
	c.caches[cacheName][path] = entry
}

func (c *Cache) lookup(path string) *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.caches[c.version][path]
	if !ok {
		return nil
	}
	return entry.clone()
}

func (c *Cache) store(path string, entry *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.caches[c.version] == nil {
		c.caches[c.version] = make(map[string]*Entry)
	}
	c.caches[c.version][path] = entry.clone()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores search results on disk, one JSON file per
// request fingerprint, with lazy TTL expiry.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/paper-scout/internal/log"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// Cache is a file-backed TTL cache keyed by request fingerprint. Each
// entry is a self-contained <fingerprint>.json file, so a corrupted
// entry never invalidates its neighbors. A disabled or unwritable
// cache degrades to a no-op: every Get misses and every Put succeeds
// silently.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool

	// now is substitutable in tests to simulate clock advance.
	now func() time.Time
}

// New returns a cache rooted at cfg.Dir. When the directory cannot be
// created the cache degrades to a no-op rather than failing: caching
// is never fatal to a search.
func New(cfg types.CacheConfig) *Cache {
	c := &Cache{
		dir:     cfg.Dir,
		ttl:     cfg.TTL,
		enabled: cfg.Enabled,
		now:     time.Now,
	}
	if !c.enabled {
		return c
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		log.Warnf("cache directory unavailable, caching disabled: %v", err)
		c.enabled = false
	}
	return c
}

// Get returns the papers stored under fingerprint, or ok=false on a
// miss. An expired or corrupted entry is deleted on this read and
// reported as a miss.
func (c *Cache) Get(fingerprint string) ([]types.PaperRecord, bool) {
	if !c.enabled {
		return nil, false
	}

	path := c.entryPath(fingerprint)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry types.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warnf("removing corrupted cache entry %s: %v", fingerprint, err)
		os.Remove(path)
		return nil, false
	}

	if entry.Expired(c.now()) {
		log.Debugf("cache entry %s expired", fingerprint)
		os.Remove(path)
		return nil, false
	}

	return entry.Papers, true
}

// Put stores papers under fingerprint, overwriting any existing entry.
// The entry is written to a temporary file and renamed into place, so
// concurrent writers of the same fingerprint resolve last-write-wins
// and readers never observe a partial entry.
func (c *Cache) Put(fingerprint, query string, papers []types.PaperRecord) error {
	if !c.enabled {
		return nil
	}

	entry := types.CacheEntry{
		Fingerprint: fingerprint,
		Query:       query,
		Papers:      papers,
		CreatedAt:   c.now(),
		TTL:         c.ttl,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding entry", types.ErrCache)
	}

	tmp, err := os.CreateTemp(c.dir, fingerprint+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating entry file", types.ErrCache)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing entry", types.ErrCache)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing entry", types.ErrCache)
	}
	if err := os.Rename(tmpName, c.entryPath(fingerprint)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: storing entry", types.ErrCache)
	}
	return nil
}

// Clear removes all entries unconditionally and returns how many were
// removed.
func (c *Cache) Clear() (int, error) {
	if !c.enabled {
		return 0, nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("%w: listing entries", types.ErrCache)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats aggregates entry count, total size, and the oldest entry's age
// without mutating the cache.
func (c *Cache) Stats() types.CacheStats {
	stats := types.CacheStats{Enabled: c.enabled}
	if !c.enabled {
		return stats
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return stats
	}

	now := c.now()
	var oldest time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.EntryCount++
		stats.TotalSizeBytes += info.Size()
		if oldest.IsZero() || info.ModTime().Before(oldest) {
			oldest = info.ModTime()
		}
	}
	if !oldest.IsZero() {
		stats.OldestEntryAge = now.Sub(oldest)
	}
	return stats
}

func (c *Cache) entryPath(fingerprint string) string {
	return filepath.Join(c.dir, fingerprint+".json")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CacheEntry is one stored search result set. Each entry is a
// self-contained JSON file keyed by the request fingerprint, so
// corruption of one entry never invalidates another.
type CacheEntry struct {
	// Fingerprint is the normalized-request key this entry was stored
	// under.
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`

	// Query echoes the original query text for inspection.
	Query string `json:"query" yaml:"query"`

	// Papers is the serialized result list.
	Papers []PaperRecord `json:"papers" yaml:"papers"`

	// CreatedAt is the entry's creation timestamp.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// TTL is how long past CreatedAt the entry remains valid.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// Expired reports whether the entry's age exceeds its TTL at the given
// instant.
func (e CacheEntry) Expired(now time.Time) bool {
	return now.After(e.CreatedAt.Add(e.TTL))
}

// CacheStats aggregates the state of the result cache without mutating
// it.
type CacheStats struct {
	// Enabled reports whether caching is active.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// EntryCount is the number of stored entries.
	EntryCount int `json:"entry_count" yaml:"entry_count"`

	// TotalSizeBytes is the summed size of all entry files.
	TotalSizeBytes int64 `json:"total_size_bytes" yaml:"total_size_bytes"`

	// OldestEntryAge is the age of the oldest entry, zero when the
	// cache is empty.
	OldestEntryAge time.Duration `json:"oldest_entry_age" yaml:"oldest_entry_age"`
}

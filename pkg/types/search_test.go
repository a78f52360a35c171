// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSearchRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SearchRequest
		wantErr bool
	}{
		{"valid", SearchRequest{Query: "quantum computing", MaxResults: 5}, false},
		{"empty query", SearchRequest{Query: "", MaxResults: 5}, true},
		{"blank query", SearchRequest{Query: "   \t ", MaxResults: 5}, true},
		{"zero max results", SearchRequest{Query: "transformers", MaxResults: 0}, true},
		{"negative max results", SearchRequest{Query: "transformers", MaxResults: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("error %v is not ErrValidation", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSearchRequestNormalized(t *testing.T) {
	cfg := PipelineConfig{DefaultMaxResults: 10, MaxResultsLimit: 50, DefaultYearsBack: 4}

	got := SearchRequest{Query: "q"}.Normalized(cfg)
	if got.MaxResults != 10 {
		t.Errorf("default max results = %d, want 10", got.MaxResults)
	}
	if got.YearsBack != 4 {
		t.Errorf("default years back = %d, want 4", got.YearsBack)
	}

	got = SearchRequest{Query: "q", MaxResults: 500, YearsBack: 2}.Normalized(cfg)
	if got.MaxResults != 50 {
		t.Errorf("clamped max results = %d, want 50", got.MaxResults)
	}
	if got.YearsBack != 2 {
		t.Errorf("years back = %d, want 2 (explicit value kept)", got.YearsBack)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := SearchRequest{Query: "Deep Learning", MaxResults: 5, YearsBack: 2, IncludeFullText: true}
	b := SearchRequest{Query: "  deep   learning ", MaxResults: 5, YearsBack: 2, IncludeFullText: true}

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("fingerprints differ for equivalent requests: %s vs %s",
			a.Fingerprint(), b.Fingerprint())
	}
	if a.Fingerprint() != a.Fingerprint() {
		t.Error("fingerprint is not stable across calls")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := SearchRequest{Query: "deep learning", MaxResults: 5, YearsBack: 2, IncludeFullText: true}

	variants := []SearchRequest{
		{Query: "deep learning models", MaxResults: 5, YearsBack: 2, IncludeFullText: true},
		{Query: "deep learning", MaxResults: 6, YearsBack: 2, IncludeFullText: true},
		{Query: "deep learning", MaxResults: 5, YearsBack: 3, IncludeFullText: true},
		{Query: "deep learning", MaxResults: 5, YearsBack: 2, IncludeFullText: false},
	}

	for i, v := range variants {
		if v.Fingerprint() == base.Fingerprint() {
			t.Errorf("variant %d should produce a distinct fingerprint", i)
		}
	}
}

func TestFingerprintShape(t *testing.T) {
	fp := SearchRequest{Query: "q", MaxResults: 1}.Fingerprint()
	if len(fp) != 32 {
		t.Errorf("fingerprint length = %d, want 32 hex chars", len(fp))
	}
	if fp != strings.ToLower(fp) {
		t.Error("fingerprint should be lowercase hex")
	}
}

func TestCacheEntryExpired(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := CacheEntry{CreatedAt: created, TTL: 24 * time.Hour}

	if entry.Expired(created.Add(23 * time.Hour)) {
		t.Error("entry expired before TTL elapsed")
	}
	if !entry.Expired(created.Add(25 * time.Hour)) {
		t.Error("entry not expired after TTL elapsed")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error taxonomy for the search pipeline. Stages wrap these sentinels
// with fmt.Errorf("...: %w", ...) and callers match with errors.Is.
// Messages stay generic: no upstream response bodies or filesystem
// paths leak to callers.
var (
	// ErrValidation marks a malformed request, rejected before any
	// network activity.
	ErrValidation = errors.New("invalid search request")

	// ErrUpstream marks a feed endpoint that is unreachable or returned
	// an unrecoverable status after retries. Fatal to the request.
	ErrUpstream = errors.New("upstream feed unavailable")

	// ErrParse marks a malformed feed payload. Fatal to the request.
	ErrParse = errors.New("malformed feed response")

	// ErrDownload marks a failed document download. Absorbed at the
	// document level; the record simply carries no full text.
	ErrDownload = errors.New("document download failed")

	// ErrExtraction marks exhaustion of every extraction strategy for
	// one document. Absorbed like ErrDownload.
	ErrExtraction = errors.New("text extraction failed")

	// ErrCache marks unreadable or unwritable cache storage. Absorbed:
	// the pipeline degrades to a live fetch.
	ErrCache = errors.New("cache storage failure")
)

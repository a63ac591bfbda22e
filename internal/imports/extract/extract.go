// Package extract turns a provider match into a spot draft. One extractor
// per provider kind; each either produces a draft from real provider data
// or fails explicitly, never a half-empty draft that looks like success.
package extract

import (
	"context"
	"errors"
	"fmt"

	"spots_backend/internal/imports/provider"
	"spots_backend/internal/spots"
)

// Source records where a draft's data came from.
type Source string

const (
	SourceAPI  Source = "api"
	SourceHTML Source = "html"
)

var (
	// ErrProviderUnavailable means the extractor has no data source to ask.
	// Callers should offer manual entry instead of retrying.
	ErrProviderUnavailable = errors.New("provider not configured")
	// ErrExtractionFailed means the provider was recognized but no usable
	// draft could be obtained from it.
	ErrExtractionFailed = errors.New("extraction failed")
)

// Result is the outcome of a successful extraction.
type Result struct {
	Provider provider.Kind
	Draft    spots.Draft
	Source   Source
}

// Extractor builds a draft for one provider kind.
type Extractor interface {
	Extract(ctx context.Context, m provider.Match) (Result, error)
}

// Registry dispatches a match to the extractor registered for its kind.
type Registry struct {
	extractors map[provider.Kind]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[provider.Kind]Extractor)}
}

// Register binds an extractor to a provider kind, replacing any previous one.
func (r *Registry) Register(kind provider.Kind, ex Extractor) {
	r.extractors[kind] = ex
}

// Extract runs the extractor for the match's kind. A kind nobody registered
// fails with ErrProviderUnavailable.
func (r *Registry) Extract(ctx context.Context, m provider.Match) (Result, error) {
	ex, ok := r.extractors[m.Kind]
	if !ok || ex == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrProviderUnavailable, m.Kind)
	}
	return ex.Extract(ctx, m)
}

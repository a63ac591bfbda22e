package extract

import (
	"context"
	"fmt"

	"spots_backend/internal/imports/provider"
	"spots_backend/internal/spots"
)

// YelpLookup resolves a Yelp business id to spot data (Fusion API client
// or similar, injected at wiring time).
type YelpLookup interface {
	BusinessDetails(ctx context.Context, businessID string) (spots.Draft, error)
}

// Yelp extracts drafts for yelp matches.
type Yelp struct {
	lookup YelpLookup
}

// NewYelp creates the extractor. A nil lookup makes every extraction fail
// with ErrProviderUnavailable.
func NewYelp(lookup YelpLookup) *Yelp {
	return &Yelp{lookup: lookup}
}

func (y *Yelp) Extract(ctx context.Context, m provider.Match) (Result, error) {
	if y.lookup == nil {
		return Result{}, fmt.Errorf("%w: yelp lookup missing", ErrProviderUnavailable)
	}
	if m.BusinessID == "" {
		return Result{}, fmt.Errorf("%w: no business id in url", ErrExtractionFailed)
	}

	draft, err := y.lookup.BusinessDetails(ctx, m.BusinessID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if draft.Name == "" {
		return Result{}, fmt.Errorf("%w: provider returned no name", ErrExtractionFailed)
	}

	return Result{Provider: provider.KindYelp, Draft: draft, Source: SourceAPI}, nil
}

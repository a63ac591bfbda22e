package extract

import (
	"context"
	"fmt"

	"spots_backend/internal/imports/provider"
	"spots_backend/internal/spots"
)

// GoogleLookup resolves a Google Maps place to spot data. Implementations
// live outside this service (a Places API client, typically) and are
// injected at wiring time.
type GoogleLookup interface {
	PlaceDetails(ctx context.Context, placeID, cid string) (spots.Draft, error)
}

// GoogleMaps extracts drafts for google_maps matches.
type GoogleMaps struct {
	lookup GoogleLookup
}

// NewGoogleMaps creates the extractor. A nil lookup is allowed and makes
// every extraction fail with ErrProviderUnavailable.
func NewGoogleMaps(lookup GoogleLookup) *GoogleMaps {
	return &GoogleMaps{lookup: lookup}
}

func (g *GoogleMaps) Extract(ctx context.Context, m provider.Match) (Result, error) {
	if g.lookup == nil {
		return Result{}, fmt.Errorf("%w: google maps lookup missing", ErrProviderUnavailable)
	}
	if m.PlaceID == "" && m.CID == "" {
		return Result{}, fmt.Errorf("%w: no place identifier in url", ErrExtractionFailed)
	}

	draft, err := g.lookup.PlaceDetails(ctx, m.PlaceID, m.CID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if draft.Name == "" {
		return Result{}, fmt.Errorf("%w: provider returned no name", ErrExtractionFailed)
	}

	return Result{Provider: provider.KindGoogleMaps, Draft: draft, Source: SourceAPI}, nil
}

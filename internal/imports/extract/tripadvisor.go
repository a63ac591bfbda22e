package extract

import (
	"context"
	"fmt"

	"spots_backend/internal/imports/provider"
	"spots_backend/internal/spots"
)

// TripAdvisorLookup resolves a TripAdvisor location id to spot data.
type TripAdvisorLookup interface {
	LocationDetails(ctx context.Context, locationID string) (spots.Draft, error)
}

// TripAdvisor extracts drafts for tripadvisor matches.
type TripAdvisor struct {
	lookup TripAdvisorLookup
}

// NewTripAdvisor creates the extractor. A nil lookup makes every extraction
// fail with ErrProviderUnavailable.
func NewTripAdvisor(lookup TripAdvisorLookup) *TripAdvisor {
	return &TripAdvisor{lookup: lookup}
}

func (t *TripAdvisor) Extract(ctx context.Context, m provider.Match) (Result, error) {
	if t.lookup == nil {
		return Result{}, fmt.Errorf("%w: tripadvisor lookup missing", ErrProviderUnavailable)
	}
	if m.LocationID == "" {
		return Result{}, fmt.Errorf("%w: no location id in url", ErrExtractionFailed)
	}

	draft, err := t.lookup.LocationDetails(ctx, m.LocationID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if draft.Name == "" {
		return Result{}, fmt.Errorf("%w: provider returned no name", ErrExtractionFailed)
	}

	return Result{Provider: provider.KindTripAdvisor, Draft: draft, Source: SourceAPI}, nil
}

package extract

import (
	"context"
	"fmt"

	"spots_backend/internal/imports/provider"
	"spots_backend/internal/spots"
)

// OpenTableLookup resolves an OpenTable restaurant by numeric profile id
// or slug; at least one is always supplied.
type OpenTableLookup interface {
	RestaurantDetails(ctx context.Context, restaurantID, slug string) (spots.Draft, error)
}

// OpenTable extracts drafts for opentable matches.
type OpenTable struct {
	lookup OpenTableLookup
}

// NewOpenTable creates the extractor. A nil lookup makes every extraction
// fail with ErrProviderUnavailable.
func NewOpenTable(lookup OpenTableLookup) *OpenTable {
	return &OpenTable{lookup: lookup}
}

func (o *OpenTable) Extract(ctx context.Context, m provider.Match) (Result, error) {
	if o.lookup == nil {
		return Result{}, fmt.Errorf("%w: opentable lookup missing", ErrProviderUnavailable)
	}
	if m.RestaurantID == "" && m.RestaurantSlug == "" {
		return Result{}, fmt.Errorf("%w: no restaurant identifier in url", ErrExtractionFailed)
	}

	draft, err := o.lookup.RestaurantDetails(ctx, m.RestaurantID, m.RestaurantSlug)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if draft.Name == "" {
		return Result{}, fmt.Errorf("%w: provider returned no name", ErrExtractionFailed)
	}

	return Result{Provider: provider.KindOpenTable, Draft: draft, Source: SourceAPI}, nil
}

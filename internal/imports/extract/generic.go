package extract

import (
	"context"
	"fmt"
	"net/url"

	"spots_backend/internal/imports/htmlmeta"
	"spots_backend/internal/imports/provider"
	"spots_backend/internal/spots"

	"golang.org/x/net/publicsuffix"
)

// PageMetadata fetches what a page says about itself. Satisfied by
// htmlmeta.Fetcher.
type PageMetadata interface {
	Fetch(ctx context.Context, u *url.URL) (htmlmeta.Metadata, error)
}

// Generic extracts drafts for URLs no provider claimed, using only the
// page's own metadata.
type Generic struct {
	meta PageMetadata
}

// NewGeneric creates the extractor. A nil fetcher makes every extraction
// fail with ErrProviderUnavailable.
func NewGeneric(meta PageMetadata) *Generic {
	return &Generic{meta: meta}
}

func (g *Generic) Extract(ctx context.Context, m provider.Match) (Result, error) {
	if g.meta == nil {
		return Result{}, fmt.Errorf("%w: metadata fetcher missing", ErrProviderUnavailable)
	}

	md, err := g.meta.Fetch(ctx, m.URL)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if md.IsEmpty() {
		return Result{}, fmt.Errorf("%w: page exposes no metadata", ErrExtractionFailed)
	}

	name := md.Title
	if name == "" {
		name = md.SiteName
	}
	if name == "" {
		name = registrableDomain(m.URL)
	}

	draft := spots.Draft{
		Name:        name,
		Website:     m.URL.String(),
		Description: md.Description,
		Latitude:    md.Latitude,
		Longitude:   md.Longitude,
	}

	return Result{Provider: provider.KindGeneric, Draft: draft, Source: SourceHTML}, nil
}

// registrableDomain reduces a host to its eTLD+1 ("tapas.example.co.uk"
// becomes "example.co.uk") as a last-resort display name.
func registrableDomain(u *url.URL) string {
	host := u.Hostname()
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

package extract

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"spots_backend/internal/imports/htmlmeta"
	"spots_backend/internal/imports/provider"
	"spots_backend/internal/spots"
)

type stubOpenTableLookup struct {
	draft  spots.Draft
	err    error
	gotID  string
	gotSlg string
}

func (s *stubOpenTableLookup) RestaurantDetails(_ context.Context, id, slug string) (spots.Draft, error) {
	s.gotID, s.gotSlg = id, slug
	return s.draft, s.err
}

type stubGoogleLookup struct {
	draft spots.Draft
	err   error
}

func (s *stubGoogleLookup) PlaceDetails(_ context.Context, placeID, cid string) (spots.Draft, error) {
	return s.draft, s.err
}

type stubPageMetadata struct {
	md  htmlmeta.Metadata
	err error
}

func (s *stubPageMetadata) Fetch(_ context.Context, _ *url.URL) (htmlmeta.Metadata, error) {
	return s.md, s.err
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestRegistryDispatchesToRegisteredExtractor(t *testing.T) {
	lookup := &stubOpenTableLookup{draft: spots.Draft{Name: "The French Laundry"}}
	reg := NewRegistry()
	reg.Register(provider.KindOpenTable, NewOpenTable(lookup))

	m := provider.Find(mustParse(t, "https://www.opentable.com/restaurant/profile/123456?ref=home"))
	if m.Kind != provider.KindOpenTable || m.RestaurantID != "123456" {
		t.Fatalf("unexpected match %+v", m)
	}

	res, err := reg.Extract(context.Background(), m)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Provider != provider.KindOpenTable {
		t.Errorf("Provider = %q", res.Provider)
	}
	if res.Source != SourceAPI {
		t.Errorf("Source = %q, want %q", res.Source, SourceAPI)
	}
	if res.Draft.Name != "The French Laundry" {
		t.Errorf("Draft.Name = %q", res.Draft.Name)
	}
	if lookup.gotID != "123456" || lookup.gotSlg != "" {
		t.Errorf("lookup got id %q slug %q", lookup.gotID, lookup.gotSlg)
	}
}

func TestRegistryUnregisteredKindUnavailable(t *testing.T) {
	reg := NewRegistry()

	m := provider.Find(mustParse(t, "https://www.opentable.com/restaurant/profile/123456"))
	_, err := reg.Extract(context.Background(), m)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestExtractorsWithoutLookupUnavailable(t *testing.T) {
	cases := []struct {
		name string
		ex   Extractor
		m    provider.Match
	}{
		{"google", NewGoogleMaps(nil), provider.Match{Kind: provider.KindGoogleMaps, PlaceID: "abc"}},
		{"yelp", NewYelp(nil), provider.Match{Kind: provider.KindYelp, BusinessID: "foo-bar-sf"}},
		{"opentable", NewOpenTable(nil), provider.Match{Kind: provider.KindOpenTable, RestaurantID: "1"}},
		{"tripadvisor", NewTripAdvisor(nil), provider.Match{Kind: provider.KindTripAdvisor, LocationID: "2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.ex.Extract(context.Background(), tc.m)
			if !errors.Is(err, ErrProviderUnavailable) {
				t.Errorf("expected ErrProviderUnavailable, got %v", err)
			}
		})
	}
}

func TestGoogleMapsExtract(t *testing.T) {
	t.Run("no identifier", func(t *testing.T) {
		ex := NewGoogleMaps(&stubGoogleLookup{})
		_, err := ex.Extract(context.Background(), provider.Match{Kind: provider.KindGoogleMaps})
		if !errors.Is(err, ErrExtractionFailed) {
			t.Errorf("expected ErrExtractionFailed, got %v", err)
		}
	})

	t.Run("lookup failure", func(t *testing.T) {
		ex := NewGoogleMaps(&stubGoogleLookup{err: errors.New("quota exceeded")})
		_, err := ex.Extract(context.Background(), provider.Match{Kind: provider.KindGoogleMaps, PlaceID: "abc"})
		if !errors.Is(err, ErrExtractionFailed) {
			t.Errorf("expected ErrExtractionFailed, got %v", err)
		}
	})

	t.Run("nameless result is failure", func(t *testing.T) {
		ex := NewGoogleMaps(&stubGoogleLookup{draft: spots.Draft{Address: "Somewhere 1"}})
		_, err := ex.Extract(context.Background(), provider.Match{Kind: provider.KindGoogleMaps, PlaceID: "abc"})
		if !errors.Is(err, ErrExtractionFailed) {
			t.Errorf("expected ErrExtractionFailed, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ex := NewGoogleMaps(&stubGoogleLookup{draft: spots.Draft{Name: "Café de Flore", City: "Paris"}})
		res, err := ex.Extract(context.Background(), provider.Match{Kind: provider.KindGoogleMaps, CID: "42"})
		if err != nil {
			t.Fatalf("Extract error: %v", err)
		}
		if res.Draft.Name != "Café de Flore" || res.Source != SourceAPI {
			t.Errorf("unexpected result %+v", res)
		}
	})
}

func TestGenericExtract(t *testing.T) {
	target := mustParse(t, "https://tapas.example.co.uk/menu")

	t.Run("fetch failure", func(t *testing.T) {
		ex := NewGeneric(&stubPageMetadata{err: errors.New("timeout")})
		_, err := ex.Extract(context.Background(), provider.Match{Kind: provider.KindGeneric, URL: target})
		if !errors.Is(err, ErrExtractionFailed) {
			t.Errorf("expected ErrExtractionFailed, got %v", err)
		}
	})

	t.Run("empty metadata is failure", func(t *testing.T) {
		ex := NewGeneric(&stubPageMetadata{})
		_, err := ex.Extract(context.Background(), provider.Match{Kind: provider.KindGeneric, URL: target})
		if !errors.Is(err, ErrExtractionFailed) {
			t.Errorf("expected ErrExtractionFailed, got %v", err)
		}
	})

	t.Run("title becomes name", func(t *testing.T) {
		ex := NewGeneric(&stubPageMetadata{md: htmlmeta.Metadata{Title: "La Bodega", Description: "Tapas bar"}})
		res, err := ex.Extract(context.Background(), provider.Match{Kind: provider.KindGeneric, URL: target})
		if err != nil {
			t.Fatalf("Extract error: %v", err)
		}
		if res.Draft.Name != "La Bodega" {
			t.Errorf("Name = %q", res.Draft.Name)
		}
		if res.Draft.Website != target.String() {
			t.Errorf("Website = %q", res.Draft.Website)
		}
		if res.Source != SourceHTML {
			t.Errorf("Source = %q, want %q", res.Source, SourceHTML)
		}
	})

	t.Run("domain fallback name", func(t *testing.T) {
		ex := NewGeneric(&stubPageMetadata{md: htmlmeta.Metadata{Description: "some text"}})
		res, err := ex.Extract(context.Background(), provider.Match{Kind: provider.KindGeneric, URL: target})
		if err != nil {
			t.Fatalf("Extract error: %v", err)
		}
		if res.Draft.Name != "example.co.uk" {
			t.Errorf("Name = %q", res.Draft.Name)
		}
	})
}

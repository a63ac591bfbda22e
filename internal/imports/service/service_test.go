package service

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"spots_backend/internal/events"
	"spots_backend/internal/geo/nominatim"
	"spots_backend/internal/imports/extract"
	"spots_backend/internal/imports/provider"
	"spots_backend/internal/spots"
	"spots_backend/platform/apperr"
	"spots_backend/platform/logger"
	"spots_backend/platform/validator"
)

type identityResolver struct {
	calls int
}

func (r *identityResolver) Resolve(ctx context.Context, u *url.URL) (*url.URL, error) {
	r.calls++
	return u, nil
}

type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, h events.Handler) {}

func (b *recordingBus) events() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.published...)
}

type stubExtractor struct {
	gotMatch provider.Match
	result   extract.Result
	err      error
}

func (s *stubExtractor) Extract(ctx context.Context, m provider.Match) (extract.Result, error) {
	s.gotMatch = m
	if s.err != nil {
		return extract.Result{}, s.err
	}
	return s.result, nil
}

type stubGeocoder struct {
	result nominatim.ReverseResult
	calls  int
}

func (s *stubGeocoder) Reverse(ctx context.Context, lat, lon float64, opts ...nominatim.ReverseOption) nominatim.ReverseResult {
	s.calls++
	return s.result
}

func newTestService(registry *extract.Registry, bus events.Bus) *Service {
	return New(&identityResolver{}, registry, bus, validator.New(), logger.New("test"))
}

func TestImportEndToEnd(t *testing.T) {
	stub := &stubExtractor{result: extract.Result{
		Provider: provider.KindOpenTable,
		Source:   extract.SourceAPI,
		Draft: spots.Draft{
			Name:    "  Chez Test  ",
			City:    "City of Paris",
			Country: "france",
		},
	}}
	registry := extract.NewRegistry()
	registry.Register(provider.KindOpenTable, stub)
	bus := &recordingBus{}
	svc := newTestService(registry, bus)

	result, err := svc.Import(context.Background(), "https://www.opentable.com/restaurant/profile/123456?ref=home")
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if stub.gotMatch.RestaurantID != "123456" {
		t.Errorf("extractor got restaurant id %q, want %q", stub.gotMatch.RestaurantID, "123456")
	}
	if result.Provider != provider.KindOpenTable || result.Source != extract.SourceAPI {
		t.Errorf("unexpected provider/source: %s/%s", result.Provider, result.Source)
	}
	if result.Draft.Name != "Chez Test" {
		t.Errorf("draft name not normalized: %q", result.Draft.Name)
	}
	if result.City == nil || result.City.City != "Paris" || result.City.CityID != "paris-france" {
		t.Errorf("unexpected canonical city: %+v", result.City)
	}

	published := bus.events()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	completed, ok := published[0].(events.ImportCompleted)
	if !ok {
		t.Fatalf("published event is %T, want ImportCompleted", published[0])
	}
	if completed.CitySlug != "paris-france" || completed.SpotName != "Chez Test" {
		t.Errorf("unexpected event payload: %+v", completed)
	}
}

func TestImportUnconfiguredProvider(t *testing.T) {
	registry := extract.NewRegistry()
	registry.Register(provider.KindYelp, extract.NewYelp(nil))
	bus := &recordingBus{}
	svc := newTestService(registry, bus)

	_, err := svc.Import(context.Background(), "https://www.yelp.com/biz/foo-bar-sf")
	if err == nil {
		t.Fatal("expected error for unconfigured provider")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("error kind = %v, want KindUnavailable", apperr.GetKind(err))
	}

	published := bus.events()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	failed, ok := published[0].(events.ImportFailed)
	if !ok {
		t.Fatalf("published event is %T, want ImportFailed", published[0])
	}
	if failed.Provider != string(provider.KindYelp) {
		t.Errorf("event provider = %q, want yelp", failed.Provider)
	}
}

func TestImportExtractionFailure(t *testing.T) {
	stub := &stubExtractor{err: extract.ErrExtractionFailed}
	registry := extract.NewRegistry()
	registry.Register(provider.KindGeneric, stub)
	svc := newTestService(registry, &recordingBus{})

	_, err := svc.Import(context.Background(), "https://example.com/somewhere")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Errorf("error kind = %v, want KindUpstream", apperr.GetKind(err))
	}
}

func TestImportRejectsBadURLs(t *testing.T) {
	bus := &recordingBus{}
	svc := newTestService(extract.NewRegistry(), bus)

	tests := []struct {
		name string
		url  string
	}{
		{"unparseable", "not a url at all"},
		{"blocked metadata host", "http://169.254.169.254/latest/meta-data"},
		{"private range", "http://10.1.2.3/admin"},
		{"wrong scheme", "ftp://example.com/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(context.Background(), tt.url)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("error kind = %v, want KindValidation", apperr.GetKind(err))
			}
		})
	}

	if n := len(bus.events()); n != 0 {
		t.Errorf("validation rejections published %d events, want 0", n)
	}
}

func TestImportEnrichesCityFromCoordinates(t *testing.T) {
	lat, lon := 51.5333, -0.0889
	stub := &stubExtractor{result: extract.Result{
		Provider: provider.KindGeneric,
		Source:   extract.SourceHTML,
		Draft: spots.Draft{
			Name:      "Canal Café",
			Latitude:  &lat,
			Longitude: &lon,
		},
	}}
	registry := extract.NewRegistry()
	registry.Register(provider.KindGeneric, stub)
	svc := newTestService(registry, &recordingBus{})

	geocoder := &stubGeocoder{result: nominatim.ReverseResult{
		City:    "London Borough of Hackney",
		Country: "United Kingdom",
	}}
	svc.SetReverseGeocoder(geocoder)

	result, err := svc.Import(context.Background(), "https://example.com/canal-cafe")
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if geocoder.calls != 1 {
		t.Errorf("geocoder called %d times, want 1", geocoder.calls)
	}
	if result.City == nil {
		t.Fatal("expected canonical city from reverse geocode")
	}
	if result.City.City != "Hackney" || result.City.CityID != "hackney-united-kingdom" {
		t.Errorf("unexpected canonical city: %+v", result.City)
	}
}

func TestImportSkipsGeocodeWhenCityKnown(t *testing.T) {
	lat, lon := 41.39, 2.17
	stub := &stubExtractor{result: extract.Result{
		Provider: provider.KindGeneric,
		Source:   extract.SourceHTML,
		Draft: spots.Draft{
			Name:      "Bar Proves",
			City:      "Barcelona",
			Country:   "Spain",
			Latitude:  &lat,
			Longitude: &lon,
		},
	}}
	registry := extract.NewRegistry()
	registry.Register(provider.KindGeneric, stub)
	svc := newTestService(registry, &recordingBus{})

	geocoder := &stubGeocoder{}
	svc.SetReverseGeocoder(geocoder)

	if _, err := svc.Import(context.Background(), "https://example.com/bar"); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if geocoder.calls != 0 {
		t.Errorf("geocoder called %d times for a draft with a city, want 0", geocoder.calls)
	}
}

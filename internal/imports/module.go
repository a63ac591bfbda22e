// Package imports is the URL import bounded context: paste a provider URL,
// get back a structured spot draft.
package imports

import (
	"spots_backend/internal/events"
	apphttp "spots_backend/internal/http"
	"spots_backend/internal/imports/extract"
	"spots_backend/internal/imports/handler"
	"spots_backend/internal/imports/htmlmeta"
	"spots_backend/internal/imports/provider"
	"spots_backend/internal/imports/service"
	"spots_backend/internal/imports/shortlink"
	"spots_backend/platform/config"
	"spots_backend/platform/httpkit"
	"spots_backend/platform/logger"
	"spots_backend/platform/validator"

	"golang.org/x/time/rate"
)

// Module wires the import pipeline and its HTTP routes.
type Module struct {
	service  *service.Service
	handler  *handler.Handler
	registry *extract.Registry
	limiter  *httpkit.IPRateLimiter
}

// NewModule assembles the pipeline. The generic page-metadata extractor
// works out of the box; the named providers start unconfigured and fail
// with "provider not configured" until the composition root injects their
// lookups.
func NewModule(cfg config.ImportConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	registry := extract.NewRegistry()
	registry.Register(provider.KindGeneric, extract.NewGeneric(htmlmeta.NewFetcher(cfg.GetFetchUserAgent(), log)))
	registry.Register(provider.KindGoogleMaps, extract.NewGoogleMaps(nil))
	registry.Register(provider.KindYelp, extract.NewYelp(nil))
	registry.Register(provider.KindOpenTable, extract.NewOpenTable(nil))
	registry.Register(provider.KindTripAdvisor, extract.NewTripAdvisor(nil))

	svc := service.New(shortlink.NewResolver(log), registry, bus, val, log)

	return &Module{
		service:  svc,
		handler:  handler.New(svc),
		registry: registry,
		limiter:  httpkit.NewIPRateLimiter(rate.Limit(cfg.GetImportRateRPS()), cfg.GetImportRateBurst(), log),
	}
}

func (m *Module) Name() string {
	return "imports"
}

// Service returns the import service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetReverseGeocoder injects the coordinate-to-city lookup.
func (m *Module) SetReverseGeocoder(g service.ReverseGeocoder) {
	m.service.SetReverseGeocoder(g)
}

// SetGoogleLookup enables the Google Maps extractor.
func (m *Module) SetGoogleLookup(lookup extract.GoogleLookup) {
	m.registry.Register(provider.KindGoogleMaps, extract.NewGoogleMaps(lookup))
}

// SetYelpLookup enables the Yelp extractor.
func (m *Module) SetYelpLookup(lookup extract.YelpLookup) {
	m.registry.Register(provider.KindYelp, extract.NewYelp(lookup))
}

// SetOpenTableLookup enables the OpenTable extractor.
func (m *Module) SetOpenTableLookup(lookup extract.OpenTableLookup) {
	m.registry.Register(provider.KindOpenTable, extract.NewOpenTable(lookup))
}

// SetTripAdvisorLookup enables the TripAdvisor extractor.
func (m *Module) SetTripAdvisorLookup(lookup extract.TripAdvisorLookup) {
	m.registry.Register(provider.KindTripAdvisor, extract.NewTripAdvisor(lookup))
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/imports")
	group.Use(m.limiter.RateLimit())
	group.POST("", m.handler.Import)
}

var _ apphttp.Module = (*Module)(nil)

package geo

import (
	"spots_backend/internal/geo/nominatim"
	apphttp "spots_backend/internal/http"
	"spots_backend/platform/config"
	"spots_backend/platform/logger"
)

// Module wires the geo lookup HTTP routes.
type Module struct {
	geocoder *nominatim.Client
	handler  *Handler
}

func NewModule(cfg config.GeocoderConfig, log *logger.Logger) *Module {
	geocoder := nominatim.NewClient(cfg, log)
	svc := NewService(geocoder, log)

	return &Module{
		geocoder: geocoder,
		handler:  NewHandler(svc),
	}
}

func (m *Module) Name() string {
	return "geo"
}

// Geocoder returns the shared Nominatim client so other modules reuse one
// rate limiter instead of each bringing their own.
func (m *Module) Geocoder() *nominatim.Client {
	return m.geocoder
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/geo")
	group.GET("/reverse-lookup", m.handler.ReverseLookup)
	group.POST("/canonical-city", m.handler.CanonicalCity)
}

var _ apphttp.Module = (*Module)(nil)

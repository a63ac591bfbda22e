// Package geo exposes reverse geocoding and city canonicalization over
// HTTP. The canonicalizer itself is pure; this module adds the Nominatim
// lookup in front of it and the routes around both.
package geo

import (
	"context"

	"spots_backend/internal/geo/citynorm"
	"spots_backend/internal/geo/nominatim"
	"spots_backend/platform/logger"
)

// Geocoder is the reverse lookup the service depends on. Satisfied by
// *nominatim.Client.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64, opts ...nominatim.ReverseOption) nominatim.ReverseResult
}

type Service struct {
	geocoder Geocoder
	log      *logger.Logger
}

func NewService(geocoder Geocoder, log *logger.Logger) *Service {
	return &Service{geocoder: geocoder, log: log}
}

// ReverseLookup resolves coordinates to a metro-city identity. A failed or
// empty lookup yields Found false rather than an error; not knowing where
// a coordinate is, is a normal outcome.
func (s *Service) ReverseLookup(ctx context.Context, lat, lon float64, zoom *int) ReverseLookupResponse {
	var opts []nominatim.ReverseOption
	if zoom != nil {
		opts = append(opts, nominatim.WithZoom(*zoom))
	}

	res := s.geocoder.Reverse(ctx, lat, lon, opts...)
	if res.IsZero() {
		return ReverseLookupResponse{Found: false}
	}

	canonical := citynorm.Canonicalize(res.City, res.Country)

	return ReverseLookupResponse{
		Found:        true,
		City:         res.City,
		Neighborhood: res.Neighborhood,
		AdminArea:    res.AdminArea,
		Country:      res.Country,
		Raw:          res.Raw,
		Canonical:    &canonical,
	}
}

// CanonicalCity previews the canonical identity for a raw city/country
// pair, evidence included.
func (s *Service) CanonicalCity(city, country string) citynorm.Result {
	return citynorm.Canonicalize(city, country)
}

// Package service runs the URL import pipeline: validate, expand short
// links, classify the provider, extract a draft, and resolve the draft's
// city to its canonical metro identity.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"spots_backend/internal/events"
	"spots_backend/internal/geo/citynorm"
	"spots_backend/internal/geo/nominatim"
	"spots_backend/internal/imports/extract"
	"spots_backend/internal/imports/provider"
	"spots_backend/internal/imports/urlcheck"
	"spots_backend/internal/spots"
	"spots_backend/platform/apperr"
	"spots_backend/platform/logger"
	"spots_backend/platform/validator"

	"github.com/google/uuid"
)

// Resolver expands short links. Satisfied by *shortlink.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, u *url.URL) (*url.URL, error)
}

// ReverseGeocoder turns coordinates into address text. Satisfied by
// *nominatim.Client. Optional: without one, imports simply skip the
// coordinate-based city enrichment.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64, opts ...nominatim.ReverseOption) nominatim.ReverseResult
}

// Result is a completed import: the draft plus where it came from and, when
// any location text was obtainable, the canonical city identity.
type Result struct {
	ImportID uuid.UUID
	Provider provider.Kind
	Source   extract.Source
	Draft    spots.Draft
	City     *citynorm.Result
}

type Service struct {
	resolver Resolver
	registry *extract.Registry
	geocoder ReverseGeocoder
	bus      events.Bus
	val      *validator.Validator
	log      *logger.Logger
}

func New(resolver Resolver, registry *extract.Registry, bus events.Bus, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		registry: registry,
		bus:      bus,
		val:      val,
		log:      log,
	}
}

// SetReverseGeocoder injects the coordinate-to-city lookup. Wired by the
// composition root so the geocoder's rate limiter is shared with the geo
// module.
func (s *Service) SetReverseGeocoder(g ReverseGeocoder) {
	s.geocoder = g
}

// Import runs the pipeline for one user-supplied URL. Validation failures
// surface verbatim; an extractor without a data source maps to a 503 so the
// frontend offers manual entry; provider fetch failures map to a 502.
func (s *Service) Import(ctx context.Context, rawURL string) (*Result, error) {
	validated, err := urlcheck.Validate(rawURL)
	if err != nil {
		return nil, validationError(err)
	}

	resolved, err := s.resolver.Resolve(ctx, validated)
	if err != nil {
		// the short link expanded to a host the validator rejects
		return nil, apperr.Wrap(apperr.KindValidation, "short link destination is not allowed", err).WithOp("imports.Import")
	}

	match := provider.Find(resolved)
	importID := uuid.New()

	extracted, err := s.registry.Extract(ctx, match)
	if err != nil {
		s.publishFailed(ctx, importID, match.Kind, err)
		if errors.Is(err, extract.ErrProviderUnavailable) {
			msg := fmt.Sprintf("no data source configured for provider %s", match.Kind)
			return nil, apperr.Wrap(apperr.KindUnavailable, msg, err).WithOp("imports.Import")
		}
		return nil, apperr.Wrap(apperr.KindUpstream, "could not extract spot data from url", err).WithOp("imports.Import")
	}

	// extractor lookups are injected collaborators; check their output
	// before presenting it as a draft
	if err := s.val.Struct(extracted.Draft); err != nil {
		s.publishFailed(ctx, importID, match.Kind, err)
		return nil, apperr.Wrap(apperr.KindUpstream, "provider returned an unusable draft", err).WithOp("imports.Import")
	}

	draft := s.enrichLocation(ctx, extracted.Draft)

	var city *citynorm.Result
	if draft.City != "" || draft.Country != "" {
		canonical := citynorm.Canonicalize(draft.City, draft.Country)
		city = &canonical
	}

	regionHint := ""
	if city != nil {
		regionHint = city.CountryCode
	}
	draft = draft.Normalized(regionHint)

	result := &Result{
		ImportID: importID,
		Provider: extracted.Provider,
		Source:   extracted.Source,
		Draft:    draft,
		City:     city,
	}

	s.publishCompleted(ctx, result)
	s.log.ImportEvent(string(result.Provider), string(result.Source), true, "")

	return result, nil
}

// enrichLocation fills in city and country from a reverse geocode when the
// draft has coordinates but no city text. Lookup failures leave the draft
// as it was.
func (s *Service) enrichLocation(ctx context.Context, draft spots.Draft) spots.Draft {
	if s.geocoder == nil || draft.City != "" || !draft.HasCoordinates() {
		return draft
	}

	rev := s.geocoder.Reverse(ctx, *draft.Latitude, *draft.Longitude)
	if rev.IsZero() {
		return draft
	}

	draft.City = rev.City
	if draft.Country == "" {
		draft.Country = rev.Country
	}
	return draft
}

func (s *Service) publishCompleted(ctx context.Context, result *Result) {
	event := events.ImportCompleted{
		BaseEvent: events.NewBaseEvent(),
		ImportID:  result.ImportID,
		Provider:  string(result.Provider),
		Source:    string(result.Source),
		SpotName:  result.Draft.Name,
	}
	if result.City != nil {
		event.City = result.City.City
		event.CitySlug = result.City.CityID
	}
	s.bus.Publish(ctx, event)
}

func (s *Service) publishFailed(ctx context.Context, importID uuid.UUID, kind provider.Kind, cause error) {
	s.log.ImportEvent(string(kind), "", false, cause.Error())
	s.bus.Publish(ctx, events.ImportFailed{
		BaseEvent: events.NewBaseEvent(),
		ImportID:  importID,
		Provider:  string(kind),
		Reason:    cause.Error(),
	})
}

// validationError maps the validator's sentinels onto typed domain errors.
// Both are 400s; the messages stay distinct because a blocked host is a
// rejection the user cannot fix by retyping the URL.
func validationError(err error) *apperr.Error {
	if errors.Is(err, urlcheck.ErrBlockedHost) {
		return apperr.Wrap(apperr.KindValidation, "url points at a host imports are not allowed to fetch", err).WithOp("imports.Import")
	}
	return apperr.Wrap(apperr.KindValidation, "url is not a valid http(s) address", err).WithOp("imports.Import")
}

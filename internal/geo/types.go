package geo

import "spots_backend/internal/geo/citynorm"

// ReverseLookupRequest carries the query parameters for a reverse lookup.
// Lat and Lon are pointers so a missing parameter is distinguishable from
// a legitimate zero coordinate.
type ReverseLookupRequest struct {
	Lat  *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lon  *float64 `form:"lon" binding:"required,min=-180,max=180"`
	Zoom *int     `form:"zoom" binding:"omitempty,min=0,max=18"`
}

// ReverseLookupResponse is the reverse lookup result returned to the
// frontend. Found false means the coordinates could not be resolved; all
// other fields are then empty and the caller falls back to manual entry.
type ReverseLookupResponse struct {
	Found        bool             `json:"found"`
	City         string           `json:"city,omitempty"`
	Neighborhood string           `json:"neighborhood,omitempty"`
	AdminArea    string           `json:"adminArea,omitempty"`
	Country      string           `json:"country,omitempty"`
	Raw          string           `json:"raw,omitempty"`
	Canonical    *citynorm.Result `json:"canonical,omitempty"`
}

// CanonicalCityRequest is the preview payload for city canonicalization.
// City may be empty; the canonicalizer then reports its fallback identity.
type CanonicalCityRequest struct {
	City    string `json:"city" binding:"max=200"`
	Country string `json:"country" binding:"omitempty,max=120"`
}

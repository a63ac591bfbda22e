// Package spots defines the spot domain model shared by the import pipeline.
package spots

import (
	"strings"

	"spots_backend/platform/phone"
)

// Draft is a partial spot record produced by an import. It has no identity
// yet; enrichment and persistence happen outside this service. Value
// semantics keep the pipeline from mutating a draft after creation.
type Draft struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	Country     string   `json:"country,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (d Draft) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// Normalized returns a copy with whitespace trimmed and, where possible, the
// phone number in E.164. regionHint is an ISO 3166-1 alpha-2 code used to
// parse national-format phone numbers.
func (d Draft) Normalized(regionHint string) Draft {
	out := d
	out.Name = strings.TrimSpace(d.Name)
	out.Category = strings.TrimSpace(d.Category)
	out.Address = strings.TrimSpace(d.Address)
	out.City = strings.TrimSpace(d.City)
	out.Country = strings.TrimSpace(d.Country)
	out.Website = strings.TrimSpace(d.Website)
	out.Description = strings.TrimSpace(d.Description)
	out.Phone = phone.NormalizeE164(d.Phone, regionHint)
	return out
}

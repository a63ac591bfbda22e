// Package transport defines the request and response DTOs for the imports
// HTTP surface.
package transport

import (
	"spots_backend/internal/geo/citynorm"
	"spots_backend/internal/spots"
)

// ImportRequest is the payload for POST /api/v1/imports. Context is an
// opaque note for the enrichment collaborator downstream; this service
// bounds its size and otherwise passes it through uninterpreted.
type ImportRequest struct {
	URL     string `json:"url" binding:"required,url"`
	Context string `json:"context" binding:"omitempty,max=2000"`
}

// ImportResponse is the structured draft returned for a successful import.
type ImportResponse struct {
	ImportID string           `json:"importId"`
	Provider string           `json:"provider"`
	Source   string           `json:"source"`
	Draft    spots.Draft      `json:"draft"`
	City     *citynorm.Result `json:"city,omitempty"`
	Context  string           `json:"context,omitempty"`
}

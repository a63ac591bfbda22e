package geo

import (
	"net/http"

	"spots_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the geo lookup endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ReverseLookup handles GET /api/v1/geo/reverse-lookup?lat=..&lon=..[&zoom=..]
func (h *Handler) ReverseLookup(c *gin.Context) {
	var req ReverseLookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat and lon query parameters are required", nil)
		return
	}

	result := h.svc.ReverseLookup(c.Request.Context(), *req.Lat, *req.Lon, req.Zoom)
	httpkit.OK(c, result)
}

// CanonicalCity handles POST /api/v1/geo/canonical-city
func (h *Handler) CanonicalCity(c *gin.Context) {
	var req CanonicalCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid canonical-city request", nil)
		return
	}

	httpkit.OK(c, h.svc.CanonicalCity(req.City, req.Country))
}

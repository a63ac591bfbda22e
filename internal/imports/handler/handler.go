// Package handler exposes the import pipeline over HTTP.
package handler

import (
	"net/http"

	"spots_backend/internal/imports/service"
	"spots_backend/internal/imports/transport"
	"spots_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Import handles POST /api/v1/imports
func (h *Handler) Import(c *gin.Context) {
	var req transport.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "a valid url is required; context may be at most 2000 characters", nil)
		return
	}

	result, err := h.svc.Import(c.Request.Context(), req.URL)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.ImportResponse{
		ImportID: result.ImportID.String(),
		Provider: string(result.Provider),
		Source:   string(result.Source),
		Draft:    result.Draft,
		City:     result.City,
		Context:  req.Context,
	})
}

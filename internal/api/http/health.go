package http

import (
	"net/http"

	"github.com/projectalpha/alpha/pkg/httpx"
)

type HealthHandler struct {
	Version string
}

// ServeHTTP reports that the API is up.
//
//	@Summary	Health check
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/ [get].
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Project Alpha API is running",
		"version": h.Version,
	})
}

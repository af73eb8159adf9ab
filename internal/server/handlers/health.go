package handlers

import (
	"net/http"

	"github.com/fostergreatness/fgsite/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "fgsite",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /ready. It fails when the response cache is
// unreachable and reports which upstream credentials are configured.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Ping(r.Context()); err != nil {
		h.logger.Warn().Err(err).Str("cache", h.cache.Name()).Msg("Readiness check failed")
		response.ServiceUnavailable(w, "Cache not available")
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"cache":  h.cache.Stats(r.Context()),
		"upstreams": map[string]bool{
			"events":     true,
			"newsletter": h.app.Newsletter().Configured(),
			"subscribe":  h.app.Subscriptions().Configured(),
			"videos":     h.app.Videos().Configured(),
		},
	})
}

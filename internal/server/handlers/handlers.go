// Package handlers provides HTTP request handlers for the fgsite API.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/internal/server/cache"
	"github.com/fostergreatness/fgsite/internal/server/response"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/logging"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app       application.Application
	cache     cache.Cache
	logger    *zerolog.Logger
	startTime time.Time
	now       func() time.Time
}

// New creates a new Handlers instance.
func New(app application.Application, c cache.Cache, logger *zerolog.Logger, startTime time.Time) *Handlers {
	return &Handlers{
		app:       app,
		cache:     c,
		logger:    logger,
		startTime: startTime,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to pick "today" for the events feed.
func (h *Handlers) WithClock(now func() time.Time) *Handlers {
	h.now = now
	return h
}

// allowMethod writes a 405 and returns false unless r uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	response.MethodNotAllowed(w, method)
	return false
}

// intParam parses an optional positive query parameter bounded by max.
// An absent parameter yields def.
func intParam(r *http.Request, name string, def, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		return 0, errors.NewValidationError(name, raw, "Invalid "+name)
	}
	return n, nil
}

// upstreamFailure logs a failed upstream call and writes the matching response.
func upstreamFailure(w http.ResponseWriter, r *http.Request, err error, rejectedMessage, logMessage string) {
	log := logging.FromContext(r.Context())
	// Timeouts and upstream 5xx are transient.
	event := log.Error()
	if errors.IsTimeout(err) || errors.IsProviderUnavailable(err) {
		event = log.Warn()
	}
	if apiErr, ok := errors.AsAPIError(err); ok {
		event.
			Str("upstream", apiErr.Provider).
			Int("status", apiErr.StatusCode).
			Str("status_text", http.StatusText(apiErr.StatusCode)).
			Msg(logMessage)
	} else {
		event.Err(err).Bool("timeout", errors.IsTimeout(err)).Msg(logMessage)
	}
	response.FromError(w, err, rejectedMessage)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fostergreatness/fgsite/internal/metrics"
	"github.com/fostergreatness/fgsite/internal/server/response"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/logging"
	"github.com/fostergreatness/fgsite/pkg/subscription"
)

// maxSubscribeBody bounds the signup request body.
const maxSubscribeBody = 64 << 10

// HandleSubscribe handles POST /api/subscribe.
//
// Body: {"email": "...", "name": "...", "form": "..."}.
func (h *Handlers) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	log := logging.FromContext(r.Context())

	var req subscription.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubscribeBody)).Decode(&req); err != nil {
		metrics.SubscriptionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		log.Warn().Err(err).Msg("Malformed subscription request")
		response.BadRequest(w, "Invalid request body")
		return
	}

	conf, err := h.app.Subscriptions().Subscribe(r.Context(), req)
	if err != nil {
		var rejected *subscription.Error
		switch {
		case errors.IsValidationError(err):
			metrics.SubscriptionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
			response.FromError(w, err, "")
		case errors.As(err, &rejected):
			metrics.SubscriptionsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
			if errors.IsRateLimited(err) {
				response.SetRetryAfter(w, rejected.RetryAfter)
			}
			response.Fail(w, rejected.StatusCode, rejected.Message)
		case errors.IsAPIKeyError(err):
			metrics.SubscriptionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			log.Error().Msg("Missing BEEHIIV_API_KEY environment variable")
			response.ConfigurationError(w)
		default:
			metrics.SubscriptionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			log.Error().Err(err).Msg("Subscription error")
			response.InternalError(w)
		}
		return
	}

	metrics.SubscriptionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	response.OK(w, conf)
}

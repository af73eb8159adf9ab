// Package subscription relays newsletter signups from the site's forms to
// the Beehiiv subscriptions API.
package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fostergreatness/fgsite/internal/transport"
	"github.com/fostergreatness/fgsite/pkg/constants"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/logging"
)

// DefaultFailureMessage is used when the upstream error carries no message.
const DefaultFailureMessage = "Subscription failed"

// Request is a signup submitted by a site form.
type Request struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	// Form selects a named attribution profile.
	Form string `json:"form,omitempty"`
}

// Attribution tags sent upstream with every signup.
type Attribution struct {
	ReferringSite string `json:"referring_site" mapstructure:"referring_site" yaml:"referring_site"`
	UTMSource     string `json:"utm_source"     mapstructure:"utm_source"     yaml:"utm_source"`
	UTMMedium     string `json:"utm_medium"     mapstructure:"utm_medium"     yaml:"utm_medium"`
	UTMCampaign   string `json:"utm_campaign"   mapstructure:"utm_campaign"   yaml:"utm_campaign"`
}

// DefaultAttribution returns the storytelling guide attribution.
func DefaultAttribution() Attribution {
	return Attribution{
		ReferringSite: constants.DefaultReferringSite,
		UTMSource:     constants.DefaultUTMSource,
		UTMMedium:     constants.DefaultUTMMedium,
		UTMCampaign:   constants.DefaultUTMCampaign,
	}
}

// merge fills empty fields of a from b.
func (a Attribution) merge(b Attribution) Attribution {
	if a.ReferringSite == "" {
		a.ReferringSite = b.ReferringSite
	}
	if a.UTMSource == "" {
		a.UTMSource = b.UTMSource
	}
	if a.UTMMedium == "" {
		a.UTMMedium = b.UTMMedium
	}
	if a.UTMCampaign == "" {
		a.UTMCampaign = b.UTMCampaign
	}
	return a
}

// Confirmation is returned for an accepted signup.
type Confirmation struct {
	Success bool `json:"success"`
	// Subscription is the upstream subscription object, unmodified.
	Subscription json.RawMessage `json:"subscription,omitempty"`
}

// Error is an upstream rejection of a signup.
type Error struct {
	StatusCode int
	Message    string
	// RetryAfter is the upstream Retry-After header, if any.
	RetryAfter string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Is implements errors.Is support
func (e *Error) Is(target error) bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return target == errors.ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == errors.ErrProviderUnavailable
	}
	return false
}

// Config configures a Relay.
type Config struct {
	APIKey        string
	PublicationID string
	BaseURL       string
	Attribution   Attribution
	Profiles      map[string]Attribution
}

// Relay forwards signups to one Beehiiv publication.
type Relay struct {
	transport     *transport.Client
	baseURL       string
	publicationID string
	attribution   Attribution
	profiles      map[string]Attribution
}

// NewRelay creates a relay. Empty attribution fields fall back to the defaults,
// and each profile falls back to the relay's attribution.
func NewRelay(cfg Config, opts ...transport.Option) *Relay {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.BeehiivBaseURL
	}
	if cfg.PublicationID == "" {
		cfg.PublicationID = constants.BeehiivPublicationID
	}
	base := cfg.Attribution.merge(DefaultAttribution())
	profiles := make(map[string]Attribution, len(cfg.Profiles))
	for name, p := range cfg.Profiles {
		profiles[name] = p.merge(base)
	}
	return &Relay{
		transport:     transport.New(constants.UpstreamBeehiiv, &transport.BearerAuth{}, cfg.APIKey, opts...),
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		publicationID: cfg.PublicationID,
		attribution:   base,
		profiles:      profiles,
	}
}

// Configured reports whether an API key is set.
func (r *Relay) Configured() bool {
	return r.transport.HasKey()
}

// AttributionFor returns the attribution of the named form, or the default
// attribution when form is empty or unknown.
func (r *Relay) AttributionFor(form string) Attribution {
	if p, ok := r.profiles[form]; ok && form != "" {
		return p
	}
	return r.attribution
}

// upstreamRequest is the body of a Beehiiv create-subscription call.
type upstreamRequest struct {
	Email              string `json:"email"`
	ReactivateExisting bool   `json:"reactivate_existing"`
	Attribution
}

// Subscribe forwards req upstream. A missing email fails before any network call.
func (r *Relay) Subscribe(ctx context.Context, req Request) (*Confirmation, error) {
	log := logging.FromContext(ctx)
	log.Info().
		Str("email", req.Email).
		Str("name", nameOrDefault(req.Name)).
		Str("form", req.Form).
		Msg("Subscription request")

	if strings.TrimSpace(req.Email) == "" {
		return nil, errors.NewValidationError("email", req.Email, "Email is required")
	}
	if !r.transport.HasKey() {
		return nil, errors.MissingKeyError("subscription", "BEEHIIV_API_KEY")
	}

	body := upstreamRequest{
		Email:              req.Email,
		ReactivateExisting: true,
		Attribution:        r.AttributionFor(req.Form),
	}
	endpoint := fmt.Sprintf("%s/publications/%s/subscriptions", r.baseURL, url.PathEscape(r.publicationID))

	resp, err := r.transport.PostJSON(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	data, err := transport.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("status", resp.StatusCode).Msg("Beehiiv subscription response")

	if !transport.IsSuccess(resp.StatusCode) {
		subErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    MessageFrom(data),
			RetryAfter: resp.Header.Get("Retry-After"),
		}
		log.Error().
			Int("status", resp.StatusCode).
			Str("status_text", http.StatusText(resp.StatusCode)).
			RawJSON("data", jsonOrNull(data)).
			Msg("Beehiiv API error")
		return nil, subErr
	}

	var payload struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.WrapParse("json", "beehiiv subscription response", err)
	}
	return &Confirmation{Success: true, Subscription: payload.Data}, nil
}

// MessageFrom extracts the most specific message from a Beehiiv error body:
// the first error's detail, then the top-level message, then a fixed string.
func MessageFrom(body []byte) string {
	var payload struct {
		Errors []struct {
			Detail string `json:"detail"`
		} `json:"errors"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return DefaultFailureMessage
	}
	if len(payload.Errors) > 0 && payload.Errors[0].Detail != "" {
		return payload.Errors[0].Detail
	}
	if payload.Message != "" {
		return payload.Message
	}
	return DefaultFailureMessage
}

func nameOrDefault(name string) string {
	if name == "" {
		return "not provided"
	}
	return name
}

func jsonOrNull(data []byte) []byte {
	if json.Valid(data) {
		return data
	}
	return []byte("null")
}

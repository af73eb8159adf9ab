// Package response writes the JSON bodies of the site API. Successful calls
// return their payload as-is (an array or object); failures return
// {"error": "<message>"} with a matching status, the shape the site's pages
// and forms already consume.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/fostergreatness/fgsite/pkg/errors"
)

// Messages shown to clients.
const (
	MsgInternal         = "Internal server error"
	MsgConfiguration    = "API configuration error"
	MsgMethodNotAllowed = "Method not allowed"
	MsgNotFound         = "Not found"
	MsgRateLimited      = "Too many requests. Please try again later."
	MsgUnauthorized     = "Invalid or missing API key"
)

// DefaultRetryAfter is sent with a propagated 429 when the upstream gave no hint.
const DefaultRetryAfter = "60"

// Error is the failure body.
type Error struct {
	Error string `json:"error"`
}

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes data with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Fail writes an error body with the given status.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Error{Error: message})
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter) {
	Fail(w, http.StatusUnauthorized, MsgUnauthorized)
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter) {
	Fail(w, http.StatusNotFound, MsgNotFound)
}

// MethodNotAllowed writes a 405 error response and the Allow header.
func MethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	Fail(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter) {
	Fail(w, http.StatusTooManyRequests, MsgRateLimited)
}

// InternalError writes a 500 error response. Details stay in the logs.
func InternalError(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, MsgInternal)
}

// ConfigurationError writes the 500 returned when a credential is missing.
func ConfigurationError(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, MsgConfiguration)
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Fail(w, http.StatusServiceUnavailable, message)
}

// SetRetryAfter sets the Retry-After header, falling back to DefaultRetryAfter.
func SetRetryAfter(w http.ResponseWriter, value string) {
	if value == "" {
		value = DefaultRetryAfter
	}
	w.Header().Set("Retry-After", value)
}

// StatusFor returns the status code a failure maps to.
// Upstream rejections keep the upstream status.
func StatusFor(err error) int {
	if apiErr, ok := errors.AsAPIError(err); ok && apiErr.StatusCode >= 400 {
		return apiErr.StatusCode
	}
	if errors.IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// FromError maps typed errors to a response. upstreamMessage is the message
// used when an upstream API rejected the call.
func FromError(w http.ResponseWriter, err error, upstreamMessage string) {
	if apiErr, ok := errors.AsAPIError(err); ok && apiErr.StatusCode >= 400 {
		if errors.IsRateLimited(err) {
			SetRetryAfter(w, apiErr.RetryAfter)
		}
		Fail(w, apiErr.StatusCode, upstreamMessage)
		return
	}

	var validation *errors.ValidationError
	switch {
	case errors.As(err, &validation):
		BadRequest(w, validation.Message)
	case errors.IsAPIKeyError(err):
		ConfigurationError(w)
	default:
		InternalError(w)
	}
}

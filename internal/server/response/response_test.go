package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	fgerrors "github.com/fostergreatness/fgsite/pkg/errors"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body Error
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body.Error
}

// TestOK tests that payloads are written unwrapped.
func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, []map[string]string{{"id": "post_1"}})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", ct)
	}

	var decoded []map[string]string
	if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["id"] != "post_1" {
		t.Errorf("unexpected body %v", decoded)
	}
}

// TestErrorHelpers tests the status and message of each failure helper.
func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		write   func(w http.ResponseWriter)
		status  int
		message string
	}{
		{"BadRequest", func(w http.ResponseWriter) { BadRequest(w, "Email is required") }, http.StatusBadRequest, "Email is required"},
		{"Unauthorized", Unauthorized, http.StatusUnauthorized, MsgUnauthorized},
		{"NotFound", NotFound, http.StatusNotFound, MsgNotFound},
		{"RateLimited", RateLimited, http.StatusTooManyRequests, MsgRateLimited},
		{"InternalError", InternalError, http.StatusInternalServerError, MsgInternal},
		{"ConfigurationError", ConfigurationError, http.StatusInternalServerError, MsgConfiguration},
		{"ServiceUnavailable", func(w http.ResponseWriter) { ServiceUnavailable(w, "cache down") }, http.StatusServiceUnavailable, "cache down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if got := decodeError(t, w); got != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, got)
			}
		})
	}
}

// TestMethodNotAllowed tests the Allow header.
func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	MethodNotAllowed(w, http.MethodPost)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("expected Allow=POST, got %q", allow)
	}
}

// TestFromError tests typed error mapping.
func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "upstream rejection keeps status",
			err:     fgerrors.NewAPIError("beehiiv", http.StatusUnauthorized, "bad key"),
			status:  http.StatusUnauthorized,
			message: "Failed to fetch newsletters",
		},
		{
			name:    "wrapped upstream error",
			err:     fmt.Errorf("fetch: %w", fgerrors.NewAPIError("beehiiv", http.StatusBadGateway, "")),
			status:  http.StatusBadGateway,
			message: "Failed to fetch newsletters",
		},
		{
			name:    "validation",
			err:     fgerrors.NewValidationError("email", "", "Email is required"),
			status:  http.StatusBadRequest,
			message: "Email is required",
		},
		{
			name:    "missing key",
			err:     fgerrors.MissingKeyError("newsletter", "BEEHIIV_API_KEY"),
			status:  http.StatusInternalServerError,
			message: MsgConfiguration,
		},
		{
			name:    "network failure",
			err:     fgerrors.NewIOError("request", "beehiiv", fmt.Errorf("connection refused")),
			status:  http.StatusInternalServerError,
			message: MsgInternal,
		},
		{
			name:    "parse failure",
			err:     fgerrors.WrapParse("json", "beehiiv", fmt.Errorf("unexpected EOF")),
			status:  http.StatusInternalServerError,
			message: MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			FromError(w, tt.err, "Failed to fetch newsletters")
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if got := decodeError(t, w); got != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, got)
			}
			if got := StatusFor(tt.err); got != tt.status {
				t.Errorf("StatusFor() = %d, want %d", got, tt.status)
			}
		})
	}
}

// TestFromErrorRateLimited tests that a propagated 429 carries Retry-After.
func TestFromErrorRateLimited(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter string
		want       string
	}{
		{"upstream hint", "30", "30"},
		{"no hint", "", DefaultRetryAfter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := fgerrors.NewAPIError("youtube", http.StatusTooManyRequests, "quota")
			apiErr.RetryAfter = tt.retryAfter

			w := httptest.NewRecorder()
			FromError(w, fmt.Errorf("fetch: %w", apiErr), "Failed to fetch videos")
			if w.Code != http.StatusTooManyRequests {
				t.Errorf("expected status 429, got %d", w.Code)
			}
			if got := w.Header().Get("Retry-After"); got != tt.want {
				t.Errorf("expected Retry-After=%q, got %q", tt.want, got)
			}
		})
	}

	w := httptest.NewRecorder()
	FromError(w, fgerrors.NewAPIError("beehiiv", http.StatusUnauthorized, ""), "Failed to fetch newsletters")
	if got := w.Header().Get("Retry-After"); got != "" {
		t.Errorf("expected no Retry-After on 401, got %q", got)
	}
}

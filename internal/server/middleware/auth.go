package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fostergreatness/fgsite/internal/server/response"
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey     string
	HeaderName string
	// ProtectedPrefixes lists the path prefixes that require the key.
	ProtectedPrefixes []string
}

// DefaultAuthConfig returns the admin authentication configuration.
func DefaultAuthConfig(apiKey string) AuthConfig {
	return AuthConfig{
		APIKey:            apiKey,
		HeaderName:        "X-API-Key",
		ProtectedPrefixes: []string{"/api/admin/"},
	}
}

// Auth middleware validates the API key on protected paths. Every other
// path passes through untouched. With no key configured, protected paths
// are refused outright.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isProtectedPath(r.URL.Path, config.ProtectedPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := extractAPIKey(r, config)
			if config.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(config.APIKey)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", apiKey != "").
					Msg("Authentication failed")

				response.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isProtectedPath checks if a path falls under a protected prefix.
func isProtectedPath(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// extractAPIKey extracts the API key from the request.
func extractAPIKey(r *http.Request, config AuthConfig) string {
	if apiKey := r.Header.Get(config.HeaderName); apiKey != "" {
		return apiKey
	}

	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return ""
}

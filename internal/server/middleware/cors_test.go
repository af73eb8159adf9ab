package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		wantOrigin string
	}{
		{"allow all", CORSConfig{AllowAll: true}, "https://evil.example", "*"},
		{"allowed origin", DefaultCORSConfig(), "https://www.fostergreatness.co", "https://www.fostergreatness.co"},
		{"case insensitive", DefaultCORSConfig(), "https://FosterGreatness.co", "https://FosterGreatness.co"},
		{"rejected origin", DefaultCORSConfig(), "https://evil.example", ""},
		{"no origin", DefaultCORSConfig(), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CORS(tt.config)(http.HandlerFunc(ok))
			r := httptest.NewRequest(http.MethodGet, "/api/newsletter", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS(DefaultCORSConfig())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	r := httptest.NewRequest(http.MethodOptions, "/api/subscribe", nil)
	r.Header.Set("Origin", "https://fostergreatness.co")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fostergreatness/fgsite/internal/server/cache"
)

func TestHandleHealth(t *testing.T) {
	h := newFixture().handlers()

	w := serve(h.HandleHealth, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"fgsite","version":"1.2.3"}`, w.Body.String())
}

func TestHandleReady(t *testing.T) {
	f := newFixture()
	f.videos.configured = false
	h := f.handlers()

	w := serve(h.HandleReady, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status    string          `json:"status"`
		Upstreams map[string]bool `json:"upstreams"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.True(t, body.Upstreams["newsletter"])
	assert.False(t, body.Upstreams["videos"])
}

func TestHandleReadyCacheDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.NewRedis(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	f := newFixture()
	f.cache = c
	h := f.handlers()
	mr.Close()

	w := serve(h.HandleReady, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Cache not available", errorMessage(t, w))
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleStats(t *testing.T) {
	h := newFixture().handlers()

	w := serve(h.HandleStats, http.MethodGet, "/api/admin/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1.2.3", body["version"])
	assert.Contains(t, body, "runtime")
	assert.Contains(t, body, "cache")
}

func TestHandleCachePurge(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.cache.Set(ctx, "events:records", []byte(`[]`), time.Minute))
	require.NoError(t, f.cache.Set(ctx, "newsletter:posts:3", []byte(`[]`), time.Minute))
	h := f.handlers()

	w := serve(h.HandleCachePurge, http.MethodPost, "/api/admin/cache/purge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"purged","removed":2}`, w.Body.String())
	assert.Zero(t, f.cache.Stats(ctx).ItemCount)
}

package transport

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&NoAuth{}).Apply(req, "test-api-key")
	assert.Empty(t, req.Header)
}

func TestBearerAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&BearerAuth{}).Apply(req, "test-api-key")
	assert.Equal(t, "Bearer test-api-key", req.Header.Get("Authorization"))
}

func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "key"}

	t.Run("adds parameter", func(t *testing.T) {
		u, err := url.Parse("https://example.com/youtube/v3/videos")
		require.NoError(t, err)
		req := &http.Request{URL: u, Header: make(http.Header)}
		auth.Apply(req, "test-api-key")
		assert.Equal(t, "test-api-key", req.URL.Query().Get("key"))
	})

	t.Run("keeps existing parameters", func(t *testing.T) {
		u, err := url.Parse("https://example.com/videos?part=contentDetails&id=a,b")
		require.NoError(t, err)
		req := &http.Request{URL: u, Header: make(http.Header)}
		auth.Apply(req, "test-api-key")
		q := req.URL.Query()
		assert.Equal(t, "contentDetails", q.Get("part"))
		assert.Equal(t, "a,b", q.Get("id"))
		assert.Equal(t, "test-api-key", q.Get("key"))
	})

	t.Run("nil url", func(t *testing.T) {
		req := &http.Request{Header: make(http.Header)}
		assert.NotPanics(t, func() { auth.Apply(req, "k") })
	})
}

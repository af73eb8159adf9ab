package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/fostergreatness/fgsite/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("email", "", "is required")
		assert.Equal(t, "validation failed for field email: is required", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty body"}
		assert.Equal(t, "validation failed: empty body", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		rateLimited bool
		unavailable bool
	}{
		{"unprocessable", http.StatusUnprocessableEntity, false, false},
		{"rate limited", http.StatusTooManyRequests, true, false},
		{"bad gateway", http.StatusBadGateway, false, true},
		{"internal", http.StatusInternalServerError, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("beehiiv", tt.status, "boom")
			assert.Contains(t, err.Error(), "beehiiv")
			assert.Contains(t, err.Error(), fmt.Sprint(tt.status))
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(err))
			assert.Equal(t, tt.unavailable, pkgerrors.IsProviderUnavailable(err))
		})
	}

	t.Run("as api error through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("fetch posts: %w", pkgerrors.NewAPIError("beehiiv", 401, "unauthorized"))
		apiErr, ok := pkgerrors.AsAPIError(wrapped)
		require.True(t, ok)
		assert.Equal(t, 401, apiErr.StatusCode)
	})

	t.Run("without status", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.APIError{Provider: "youtube", Message: "request failed", Err: base}
		assert.Equal(t, "API error from youtube: request failed", err.Error())
		assert.Equal(t, base, errors.Unwrap(err))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		err := pkgerrors.MissingKeyError("newsletter", "BEEHIIV_API_KEY")
		assert.Contains(t, err.Error(), "newsletter")
		assert.Contains(t, err.Error(), "BEEHIIV_API_KEY")
		assert.True(t, pkgerrors.IsAPIKeyError(err))

		var cfgErr *pkgerrors.ConfigError
		require.True(t, pkgerrors.As(fmt.Errorf("wrap: %w", err), &cfgErr))
		assert.Equal(t, "newsletter", cfgErr.Component)
	})

	t.Run("without component", func(t *testing.T) {
		err := pkgerrors.NewConfigError("", "bad timezone", nil)
		assert.Equal(t, "configuration error: bad timezone", err.Error())
	})
}

func TestParseError(t *testing.T) {
	base := errors.New("unexpected end of JSON input")
	err := pkgerrors.WrapParse("json", "events response", base)

	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "json", parseErr.Format)
	assert.Equal(t, "json parse error in events response: unexpected end of JSON input", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))

	assert.Nil(t, pkgerrors.WrapParse("json", "x", nil))
}

func TestIOError(t *testing.T) {
	base := errors.New("dial tcp: connection refused")
	err := pkgerrors.WrapIO("request", "https://api.beehiiv.com/v2", base)

	ioErr, ok := err.(*pkgerrors.IOError)
	require.True(t, ok)
	assert.Equal(t, "request", ioErr.Operation)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, pkgerrors.WrapIO("request", "x", nil))
}

func TestTimeoutError(t *testing.T) {
	err := &pkgerrors.TimeoutError{Operation: "fetch events", Duration: "15s", Message: "deadline exceeded"}
	assert.True(t, pkgerrors.IsTimeout(err))
	assert.Contains(t, err.Error(), "15s")
}

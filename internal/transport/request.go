package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/logging"
)

// maxErrorBody bounds how much of an error body is kept in an APIError message.
const maxErrorBody = 512

// ReadBody reads and closes the response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}
	return body, nil
}

// IsSuccess reports whether the status code is 2xx.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// DecodeResponse decodes a JSON response into the target structure.
// Non-2xx responses become an *errors.APIError for the given upstream.
func DecodeResponse(resp *http.Response, upstream string, target any) error {
	body, err := ReadBody(resp)
	if err != nil {
		return err
	}

	if !IsSuccess(resp.StatusCode) {
		apiErr := errors.NewAPIError(upstream, resp.StatusCode, truncate(strings.TrimSpace(string(body))))
		apiErr.RetryAfter = resp.Header.Get("Retry-After")
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.URL.Path
		}
		return apiErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", upstream+" response", err)
	}
	return nil
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}

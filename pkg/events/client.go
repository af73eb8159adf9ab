package events

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/fostergreatness/fgsite/internal/transport"
	"github.com/fostergreatness/fgsite/pkg/constants"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/logging"
)

// Client fetches raw event records from the events source.
type Client struct {
	transport *transport.Client
	sourceURL string
}

// NewClient creates an events client. An empty sourceURL uses the default source.
func NewClient(sourceURL string, opts ...transport.Option) *Client {
	if sourceURL == "" {
		sourceURL = constants.EventsSourceURL
	}
	return &Client{
		transport: transport.New(constants.UpstreamEvents, &transport.NoAuth{}, "", opts...),
		sourceURL: sourceURL,
	}
}

// SourceURL returns the endpoint this client reads.
func (c *Client) SourceURL() string {
	return c.sourceURL
}

// FetchRecords returns every record the source currently publishes.
func (c *Client) FetchRecords(ctx context.Context) ([]Record, error) {
	resp, err := c.transport.Get(ctx, c.sourceURL)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := transport.DecodeResponse(resp, constants.UpstreamEvents, &raw); err != nil {
		return nil, err
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Int("records", len(records)).
		Msg("Fetched events")
	return records, nil
}

// decodeRecords accepts a bare array or an object wrapping it in "records".
func decodeRecords(raw json.RawMessage) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var records []Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, errors.WrapParse("json", "events", err)
		}
		return records, nil
	}

	var wrapped struct {
		Records []Record `json:"records"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, errors.WrapParse("json", "events", err)
	}
	if wrapped.Records == nil {
		return []Record{}, nil
	}
	return wrapped.Records, nil
}

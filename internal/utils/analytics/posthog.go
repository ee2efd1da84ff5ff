// Package analytics wraps the PostHog client so callers never have to check
// whether analytics is configured.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultEndpoint is used when no endpoint is configured.
const DefaultEndpoint = "https://eu.i.posthog.com"

// Client forwards events to PostHog. The zero value and a nil *Client drop
// every event.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// NewClient returns a disabled client when apiKey is empty.
func NewClient(apiKey, endpoint string, logger *slog.Logger) *Client {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &Client{}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to create posthog client, analytics disabled", slog.String("error", err.Error()))
		return &Client{}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &Client{posthogClient: c, logger: logger}
}

func (w *Client) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

func (w *Client) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctID), slog.String("event", event))
	err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		w.logger.Warn("Failed to enqueue event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (w *Client) Close() {
	if !w.IsInitialized() {
		return
	}
	_ = w.posthogClient.Close()
}

package analytics

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_DisabledWithoutKey(t *testing.T) {
	c := NewClient("", "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.False(t, c.IsInitialized())
	assert.NotPanics(t, func() {
		c.Enqueue("u1", "api_v1_reports_trial-balance", nil)
		c.Close()
	})
}

func TestNilClient(t *testing.T) {
	var c *Client

	assert.False(t, c.IsInitialized())
	assert.NotPanics(t, func() {
		c.Enqueue("u1", "event", map[string]any{"k": "v"})
		c.Close()
	})
}

package messaging

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
)

func TestConnectOptions_CarryConfiguredTimeouts(t *testing.T) {
	cfg := &config.Config{
		NatsConnectTimeout: 7 * time.Second,
		NatsReconnectWait:  3 * time.Second,
		NatsMaxReconnects:  -1,
		NatsDrainTimeout:   9 * time.Second,
	}

	var opts nats.Options
	for _, opt := range connectOptions(cfg) {
		require.NoError(t, opt(&opts))
	}

	assert.Equal(t, "surveillance-backend", opts.Name)
	assert.Equal(t, 7*time.Second, opts.Timeout)
	assert.Equal(t, 3*time.Second, opts.ReconnectWait)
	assert.Equal(t, -1, opts.MaxReconnect)
	assert.Equal(t, 9*time.Second, opts.DrainTimeout)
}

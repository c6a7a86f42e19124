package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("TICKETDESK_AUTH_JWT_SECRET", "test-secret")
	t.Setenv("TICKETDESK_HUB_SEND_BUFFER", "32")
	t.Setenv("TICKETDESK_HUB_EVICT_ON_DISCONNECT", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.Auth.JWT.Secret)
	assert.Equal(t, 32, cfg.Hub.SendBuffer)
	assert.False(t, cfg.Hub.EvictOnDisconnect)
	assert.Equal(t, 30*time.Second, cfg.Hub.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.Hub.PongWait)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetAddr())
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverridesMode(t *testing.T) {
	t.Setenv("TICKETDESK_AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load("release")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("TICKETDESK_AUTH_JWT_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt.secret")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.Auth.JWT.Secret = "s"
		c.Database.Driver = "sqlite"
		c.Hub.SendBuffer = 8
		c.Hub.PingPeriod = time.Second
		c.Hub.PongWait = 2 * time.Second
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, true},
		{"zero buffer", func(c *Config) { c.Hub.SendBuffer = 0 }, true},
		{"ping not shorter than pong", func(c *Config) { c.Hub.PingPeriod = c.Hub.PongWait }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

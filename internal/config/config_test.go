package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv restores the previous value after the test.
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-abc")
		t.Setenv("MIDTRANS_CLIENT_KEY", "SB-Mid-client-abc")
		t.Setenv("MIDTRANS_IS_PRODUCTION", "true")
		t.Setenv("HTTP_TIMEOUT", "5s")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "SB-Mid-server-abc", cfg.MidtransServerKey)
		assert.Equal(t, "SB-Mid-client-abc", cfg.MidtransClientKey)
		assert.True(t, cfg.MidtransProduction)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)

		m := cfg.Midtrans()
		assert.Equal(t, "SB-Mid-server-abc", m.ServerKey)
		assert.Equal(t, "https://api.midtrans.com", m.CoreAPIBaseURL())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("APP_PORT", "")
		t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-abc")
		t.Setenv("MIDTRANS_IS_PRODUCTION", "")
		t.Setenv("HTTP_TIMEOUT", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.False(t, cfg.MidtransProduction)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	})

	t.Run("Missing server key", func(t *testing.T) {
		t.Setenv("MIDTRANS_SERVER_KEY", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Invalid values", func(t *testing.T) {
		t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-abc")
		t.Setenv("MIDTRANS_IS_PRODUCTION", "maybe")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "MIDTRANS_IS_PRODUCTION")

		t.Setenv("MIDTRANS_IS_PRODUCTION", "false")
		t.Setenv("HTTP_TIMEOUT", "soon")
		_, err = LoadConfig()
		assert.ErrorContains(t, err, "HTTP_TIMEOUT")
	})
}

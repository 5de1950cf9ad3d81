package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ServerDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	var cfg Server
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "@every 10s", cfg.OutboxSchedule)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.InDelta(t, 20.0, cfg.RateLimitRPS, 0.0001)
}

func TestParseEnv_ServerRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	var cfg Server
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestParseEnv_ClientOverrides(t *testing.T) {
	t.Setenv("SHOP_API_URL", "https://shop.example.com")
	t.Setenv("SHOP_CART_PATH", "/tmp/cart.db")
	t.Setenv("SHOP_REQUEST_TIMEOUT", "3s")

	var cfg Client
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, "https://shop.example.com", cfg.APIURL)
	assert.Equal(t, "/tmp/cart.db", cfg.CartPath)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

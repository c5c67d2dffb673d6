package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRegistryEnv(t *testing.T, httpPort, grpcPort, ttl, rateLimit string) {
	t.Setenv("SERVICE_PORT_HTTP", httpPort)
	t.Setenv("SERVICE_PORT_GRPC", grpcPort)
	t.Setenv("REGISTRY_TTL_SECONDS", ttl)
	t.Setenv("REGISTRY_RATE_LIMIT", rateLimit)
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRegistryEnv(t, "", "", "", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 3080, cfg.HTTPPort)
	assert.Equal(t, 0, cfg.GRPCPort)
	assert.Equal(t, 15*time.Second, cfg.TTL)
	assert.Zero(t, cfg.RateLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRegistryEnv(t, "4000", "5000", "30", "12.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.HTTPPort)
	assert.Equal(t, 5000, cfg.GRPCPort)
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, 12.5, cfg.RateLimit)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		httpPort  string
		grpcPort  string
		ttl       string
		rateLimit string
		errPart   string
	}{
		{name: "http port", httpPort: "abc", errPart: "SERVICE_PORT_HTTP"},
		{name: "grpc port", grpcPort: "abc", errPart: "SERVICE_PORT_GRPC"},
		{name: "ttl not a number", ttl: "soon", errPart: "REGISTRY_TTL_SECONDS"},
		{name: "ttl zero", ttl: "0", errPart: "REGISTRY_TTL_SECONDS"},
		{name: "rate limit not a number", rateLimit: "fast", errPart: "REGISTRY_RATE_LIMIT"},
		{name: "rate limit negative", rateLimit: "-1", errPart: "REGISTRY_RATE_LIMIT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRegistryEnv(t, tt.httpPort, tt.grpcPort, tt.ttl, tt.rateLimit)
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

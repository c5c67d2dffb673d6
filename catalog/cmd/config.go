package main

import (
	"fmt"
	"os"
	"time"

	"microreg/catalog/adapters/myredis"
	"microreg/helpers"
	"microreg/registryclient"
)

// CatalogConfig is the catalog process configuration. HTTPPort 0 binds an ephemeral port;
// the bound port is the one registered.
type CatalogConfig struct {
	Redis             myredis.RedisConfig
	HTTPPort          int
	Registration      registryclient.Registration
	RegistryURL       string
	HeartbeatInterval time.Duration
}

// LoadConfig loads configuration from environment variables. REDIS_ADDR is required.
func LoadConfig() (*CatalogConfig, error) {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required")
	}

	httpPort, err := helpers.EnvInt("SERVICE_PORT_HTTP", 0)
	if err != nil {
		return nil, err
	}
	if httpPort < 0 || httpPort > 65535 {
		return nil, fmt.Errorf("SERVICE_PORT_HTTP out of range: %d", httpPort)
	}

	intervalSeconds, err := helpers.EnvInt("HEARTBEAT_INTERVAL_SECONDS", int(registryclient.DefaultHeartbeatInterval/time.Second))
	if err != nil {
		return nil, err
	}
	if intervalSeconds <= 0 {
		return nil, fmt.Errorf("HEARTBEAT_INTERVAL_SECONDS must be positive, got %d", intervalSeconds)
	}

	return &CatalogConfig{
		Redis:    myredis.RedisConfig{Addr: redisAddr},
		HTTPPort: httpPort,
		Registration: registryclient.Registration{
			Name:    helpers.EnvString("SERVICE_NAME", "catalog-service"),
			Version: helpers.EnvString("SERVICE_VERSION", "1.0.0"),
			Address: os.Getenv("SERVICE_ADDRESS"),
		},
		RegistryURL:       helpers.EnvString("REGISTRY_URL", "http://127.0.0.1:3080"),
		HeartbeatInterval: time.Duration(intervalSeconds) * time.Second,
	}, nil
}

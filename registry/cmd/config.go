package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"microreg/helpers"
)

// RegistryConfig is the registry process configuration. A zero GRPCPort disables the gRPC
// health endpoint. RateLimit is per client in requests per second; 0 disables limiting.
type RegistryConfig struct {
	HTTPPort  int
	GRPCPort  int
	TTL       time.Duration
	RateLimit float64
}

// LoadConfig loads configuration from environment variables.
// SERVICE_PORT_HTTP defaults to 3080 and REGISTRY_TTL_SECONDS to 15.
func LoadConfig() (*RegistryConfig, error) {
	httpPort, err := helpers.EnvInt("SERVICE_PORT_HTTP", 3080)
	if err != nil {
		return nil, err
	}
	grpcPort, err := helpers.EnvInt("SERVICE_PORT_GRPC", 0)
	if err != nil {
		return nil, err
	}
	ttlSeconds, err := helpers.EnvInt("REGISTRY_TTL_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("REGISTRY_TTL_SECONDS must be positive, got %d", ttlSeconds)
	}

	var rateLimit float64
	if v := os.Getenv("REGISTRY_RATE_LIMIT"); v != "" {
		rateLimit, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid REGISTRY_RATE_LIMIT: %w", err)
		}
		if rateLimit < 0 {
			return nil, fmt.Errorf("REGISTRY_RATE_LIMIT must not be negative, got %v", rateLimit)
		}
	}

	return &RegistryConfig{
		HTTPPort:  httpPort,
		GRPCPort:  grpcPort,
		TTL:       time.Duration(ttlSeconds) * time.Second,
		RateLimit: rateLimit,
	}, nil
}

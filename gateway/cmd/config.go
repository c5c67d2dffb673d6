package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"microreg/gateway/domain"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort    = "SERVICE_PORT_HTTP"
	envRegistryURL = "REGISTRY_URL"
	envConfigPath  = "CONFIG_PATH"
)

// GatewayConfig holds the gateway configuration: listen port and registry URL from the
// environment, routes from the YAML file at CONFIG_PATH.
type GatewayConfig struct {
	HTTPPort    int
	RegistryURL string
	Routes      domain.RouteConfig
}

type yamlConfig struct {
	Routes []yamlRoute `yaml:"routes"`
}

type yamlRoute struct {
	Prefix      string `yaml:"prefix"`
	Service     string `yaml:"service"`
	Version     string `yaml:"version"`
	StripPrefix bool   `yaml:"strip_prefix"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig reads SERVICE_PORT_HTTP (1-65535), REGISTRY_URL and CONFIG_PATH, all required,
// then loads and validates the routes. An empty route version means any version.
func LoadConfig() (*GatewayConfig, error) {
	portStr := strings.TrimSpace(os.Getenv(envHTTPPort))
	port, err := strconv.Atoi(portStr)
	if err != nil || portStr == "" {
		return nil, fmt.Errorf("%s must be a valid port (1-65535)", envHTTPPort)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envHTTPPort, port)
	}

	registryURL := strings.TrimSpace(os.Getenv(envRegistryURL))
	if registryURL == "" {
		return nil, fmt.Errorf("%s is required", envRegistryURL)
	}

	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, fmt.Errorf("%s is required", envConfigPath)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	routes := make([]domain.Route, 0, len(raw.Routes))
	for _, route := range raw.Routes {
		version := strings.TrimSpace(route.Version)
		if version == "" {
			version = domain.AnyVersion
		}
		routes = append(routes, domain.Route{
			Prefix:      normalizePrefix(route.Prefix),
			Service:     strings.TrimSpace(route.Service),
			Version:     version,
			StripPrefix: route.StripPrefix,
		})
	}
	routeCfg := domain.RouteConfig{Routes: routes}
	if err := domain.ValidateRouteConfig(routeCfg); err != nil {
		return nil, err
	}

	return &GatewayConfig{
		HTTPPort:    port,
		RegistryURL: registryURL,
		Routes:      routeCfg,
	}, nil
}

// normalizePrefix trims spaces and a trailing "*", and adds a leading "/".
func normalizePrefix(prefix string) string {
	p := strings.TrimSuffix(strings.TrimSpace(prefix), "*")
	if p != "" && p[0] != '/' {
		p = "/" + p
	}
	return p
}

// Package handlers contains http handlers for the registry.
package handlers

import (
	"fmt"
	"net/http"

	"microreg/helpers"
	"microreg/registry/interfaces"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface over a Registry.
type HTTPServer struct {
	registry interfaces.Registry
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(registry interfaces.Registry, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		registry: helpers.NilPanic(registry, "handlers.http.go: registry is required"),
		logger:   logger,
	}
}

// advertisedAddress is the address query parameter, or the caller address when it is absent.
func advertisedAddress(ectx echo.Context, params InstanceParams) string {
	return helpers.ValueOr(params.Address, ectx.RealIP())
}

// RegisterInstance (PUT /v1/register/{name}/{version}/{port}) creates or refreshes a record.
// Returns 200 with the key, 400 on malformed input.
func (h *HTTPServer) RegisterInstance(ectx echo.Context, name string, version string, port int, params InstanceParams) error {
	key, err := h.registry.Register(name, version, advertisedAddress(ectx, params), port)
	if err != nil {
		return fmt.Errorf("registerInstance failed to register %s, err: %w", key, err)
	}
	return ectx.JSON(http.StatusOK, toKeyResponse(key))
}

// UnregisterInstance (DELETE /v1/register/{name}/{version}/{port}) removes a record. Always 200.
func (h *HTTPServer) UnregisterInstance(ectx echo.Context, name string, version string, port int, params InstanceParams) error {
	key := h.registry.Unregister(name, version, advertisedAddress(ectx, params), port)
	return ectx.JSON(http.StatusOK, toKeyResponse(key))
}

// FindInstance (GET /v1/find/{name}/{version_constraint}) returns one live matching instance.
// Returns 404 entity_not_found when none is alive.
func (h *HTTPServer) FindInstance(ectx echo.Context, name string, versionConstraint string) error {
	record, err := h.registry.Get(name, versionConstraint)
	if err != nil {
		return fmt.Errorf("findInstance failed for %s@%s, err: %w", name, versionConstraint, err)
	}
	return ectx.JSON(http.StatusOK, toInstanceInfo(record))
}

// ListInstances (GET /v1/instances) returns every live instance.
func (h *HTTPServer) ListInstances(ectx echo.Context) error {
	records, err := h.registry.List()
	if err != nil {
		return fmt.Errorf("listInstances failed, err: %w", err)
	}
	return ectx.JSON(http.StatusOK, toInstancesResponse(records))
}

func (h *HTTPServer) Healthz(ectx echo.Context) error {
	return ectx.NoContent(http.StatusOK)
}

package handlers

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// InstanceInfo defines model for InstanceInfo.
type InstanceInfo struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Address      string    `json:"address"`
	Port         int       `json:"port"`
	LastSeen     time.Time `json:"last_seen"`
	LastSeenUnix int64     `json:"last_seen_unix"`
}

// InstancesResponse defines model for InstancesResponse.
type InstancesResponse struct {
	Instances []InstanceInfo `json:"instances"`
}

// KeyResponse defines model for KeyResponse.
type KeyResponse struct {
	Key string `json:"key"`
}

// InstanceParams defines query parameters shared by register and unregister.
type InstanceParams struct {
	// Address overrides the caller address as the advertised host.
	Address *string `form:"address,omitempty" json:"address,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (PUT /v1/register/{name}/{version}/{port})
	RegisterInstance(ctx echo.Context, name string, version string, port int, params InstanceParams) error
	// (DELETE /v1/register/{name}/{version}/{port})
	UnregisterInstance(ctx echo.Context, name string, version string, port int, params InstanceParams) error
	// (GET /v1/find/{name}/{version_constraint})
	FindInstance(ctx echo.Context, name string, versionConstraint string) error
	// (GET /v1/instances)
	ListInstances(ctx echo.Context) error
	// (GET /healthz)
	Healthz(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathParameter[T any](ctx echo.Context, name string, dest *T) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("Invalid format for parameter %s: %s", name, err)).SetInternal(err)
	}
	return nil
}

func (w *ServerInterfaceWrapper) bindInstance(ctx echo.Context) (name, version string, port int, params InstanceParams, err error) {
	if err = bindPathParameter(ctx, "name", &name); err != nil {
		return
	}
	if err = bindPathParameter(ctx, "version", &version); err != nil {
		return
	}
	if err = bindPathParameter(ctx, "port", &port); err != nil {
		return
	}
	if bindErr := runtime.BindQueryParameter("form", true, false, "address", ctx.QueryParams(), &params.Address); bindErr != nil {
		err = echo.NewHTTPError(400, fmt.Sprintf("Invalid format for parameter address: %s", bindErr)).SetInternal(bindErr)
	}
	return
}

// RegisterInstance converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterInstance(ctx echo.Context) error {
	name, version, port, params, err := w.bindInstance(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RegisterInstance(ctx, name, version, port, params)
}

// UnregisterInstance converts echo context to params.
func (w *ServerInterfaceWrapper) UnregisterInstance(ctx echo.Context) error {
	name, version, port, params, err := w.bindInstance(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UnregisterInstance(ctx, name, version, port, params)
}

// FindInstance converts echo context to params.
func (w *ServerInterfaceWrapper) FindInstance(ctx echo.Context) error {
	var name, versionConstraint string
	if err := bindPathParameter(ctx, "name", &name); err != nil {
		return err
	}
	if err := bindPathParameter(ctx, "version_constraint", &versionConstraint); err != nil {
		return err
	}
	return w.Handler.FindInstance(ctx, name, versionConstraint)
}

// ListInstances converts echo context to params.
func (w *ServerInterfaceWrapper) ListInstances(ctx echo.Context) error {
	return w.Handler.ListInstances(ctx)
}

// Healthz converts echo context to params.
func (w *ServerInterfaceWrapper) Healthz(ctx echo.Context) error {
	return w.Handler.Healthz(ctx)
}

// EchoRouter is implemented by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers with a path prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.PUT(baseURL+"/v1/register/:name/:version/:port", wrapper.RegisterInstance)
	router.DELETE(baseURL+"/v1/register/:name/:version/:port", wrapper.UnregisterInstance)
	router.GET(baseURL+"/v1/find/:name/:version_constraint", wrapper.FindInstance)
	router.GET(baseURL+"/v1/instances", wrapper.ListInstances)
	router.GET(baseURL+"/healthz", wrapper.Healthz)
}

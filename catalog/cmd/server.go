package main

import (
	"fmt"
	"net"
	"time"

	"microreg/apierror"
	"microreg/catalog/handlers"
	"microreg/catalog/interfaces"
	"microreg/helpers"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// newEcho wires the catalog HTTP surface over store.
func newEcho(store interfaces.ItemStore, logger log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewRequestValidator()
	apierror.RegisterErrorHandler(e, logger)
	e.Use(middleware.Recover())
	e.Use(helpers.RequestLogger(logger))

	now := func() time.Time {
		return time.Now().UTC()
	}
	handlers.RegisterHandlers(e, handlers.NewHTTPServer(store, uuid.NewString, now, logger))
	return e
}

// listen binds port (0 for an ephemeral port) and returns the listener with the bound port.
func listen(port int) (net.Listener, int, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	return lis, lis.Addr().(*net.TCPAddr).Port, nil
}

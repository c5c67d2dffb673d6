package main

import (
	"net/http"

	"microreg/apierror"
	"microreg/gateway/service"
	"microreg/helpers"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// newEcho serves /healthz locally and sends every other path through proxy.
func newEcho(proxy *service.Proxy, logger log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	apierror.RegisterErrorHandler(e, logger)
	e.Use(middleware.Recover())
	e.Use(helpers.RequestLogger(logger))

	e.GET("/healthz", func(ectx echo.Context) error {
		return ectx.String(http.StatusOK, "ok")
	})
	e.Any("/*", proxy.Handle)
	return e
}

package main

import (
	"context"
	"fmt"

	"microreg/apierror"
	"microreg/helpers"
	"microreg/registry/handlers"
	"microreg/registry/interfaces"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// newEcho wires the registry HTTP surface: error handler, request log, optional rate limit,
// OpenAPI request validation and the registry handlers.
func newEcho(ctx context.Context, config *RegistryConfig, registry interfaces.Registry, logger log.Logger) (*echo.Echo, error) {
	doc, err := handlers.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := handlers.NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	apierror.RegisterErrorHandler(e, logger)
	e.Use(middleware.Recover())
	e.Use(helpers.RequestLogger(logger))
	if config.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(config.RateLimit))))
	}
	e.Use(validate)
	handlers.RegisterHandlers(e, handlers.NewHTTPServer(registry, logger))
	return e, nil
}

// newHealthServer creates a gRPC server exposing grpc.health.v1 and reflection.
func newHealthServer() (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	return grpcServer, healthServer
}

func listenAddr(port int) string {
	return fmt.Sprintf(":%d", port)
}

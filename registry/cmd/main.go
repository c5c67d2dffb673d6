package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microreg/helpers"
	"microreg/registry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting registry service")

	if err := helpers.LoadDotEnv(".env"); err != nil {
		level.Error(logger).Log("msg", "Failed to load .env", "err", err)
		os.Exit(1)
	}

	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"ttl", config.TTL,
		"rate_limit", config.RateLimit,
	)

	var registry *service.Registry
	{
		registry = service.NewRegistry(
			config.TTL,
			service.NewTimeProvider(time.Now),
			service.NewRandomSelector(),
			logger,
		)
	}

	var e *echo.Echo
	{
		e, err = newEcho(context.Background(), config, registry, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create HTTP server", "err", err)
			os.Exit(1)
		}
	}

	var (
		grpcServer   *grpc.Server
		healthServer *health.Server
	)
	if config.GRPCPort != 0 {
		lis, err := net.Listen("tcp", listenAddr(config.GRPCPort))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to listen", "err", err)
			os.Exit(1)
		}
		grpcServer, healthServer = newHealthServer()
		go func() {
			level.Info(logger).Log("msg", "Starting gRPC health server", "addr", lis.Addr())
			if err := grpcServer.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		addr := listenAddr(config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		level.Error(logger).Log("msg", "HTTP server error", "err", err)
	}
	level.Info(logger).Log("msg", "Shutting down server...")

	if healthServer != nil {
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := registry.Close(); err != nil {
		level.Error(logger).Log("msg", "Error closing registry", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}

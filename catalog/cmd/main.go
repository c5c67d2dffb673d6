package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microreg/catalog/adapters/myredis"
	"microreg/catalog/interfaces"
	"microreg/helpers"
	"microreg/registryclient"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting catalog service")

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
		"service_name", config.Registration.Name,
		"service_version", config.Registration.Version,
		"service_port_http", config.HTTPPort,
		"registry_url", config.RegistryURL,
		"heartbeat_interval", config.HeartbeatInterval,
		"redis_addr", config.Redis.Addr,
	)

	var (
		redisClient redis.UniversalClient
		store       interfaces.ItemStore
	)
	{
		redisClient, err = myredis.NewRedisUniversalClient(config.Redis.Addr)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		store = myredis.NewItemStore(redisClient)
	}

	var e *echo.Echo
	{
		e = newEcho(store, logger)
	}

	lis, port, err := listen(config.HTTPPort)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to listen", "err", err)
		os.Exit(1)
	}
	e.Listener = lis

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", lis.Addr())
		if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var heartbeat *registryclient.Heartbeat
	{
		registration := config.Registration
		registration.Port = port
		client := registryclient.New(config.RegistryURL, &http.Client{Timeout: 5 * time.Second})
		heartbeat = registryclient.NewHeartbeat(client, registration, config.HeartbeatInterval, logger)
		heartbeat.Start(context.Background())
	}

	select {
	case <-quit:
	case err := <-serverErr:
		level.Error(logger).Log("msg", "HTTP server error", "err", err)
	}
	level.Info(logger).Log("msg", "Shutting down server...")

	// Unregister before the listener closes; the registry TTL reclaims the record if this fails.
	unregisterCtx, unregisterCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer unregisterCancel()
	if err := heartbeat.Stop(unregisterCtx); err != nil {
		level.Warn(logger).Log("msg", "Failed to unregister", "err", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	if err := redisClient.Close(); err != nil {
		level.Error(logger).Log("msg", "Error closing Redis client", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}

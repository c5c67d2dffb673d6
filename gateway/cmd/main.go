// Package main is the gateway entry point. It loads configuration (env + YAML routes), builds the
// route matcher and the registry-backed reverse proxy, and serves HTTP until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"microreg/gateway/service"
	"microreg/helpers"
	"microreg/registryclient"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	if err := helpers.LoadDotEnv(".env"); err != nil {
		level.Error(logger).Log("msg", "failed to load .env", "err", err)
		os.Exit(1)
	}
	cfg, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}
	matcher, err := service.NewRouteMatcher(cfg.Routes)
	if err != nil {
		level.Error(logger).Log("msg", "invalid route config", "err", err)
		os.Exit(1)
	}

	resolver := registryclient.New(cfg.RegistryURL, &http.Client{Timeout: 5 * time.Second})
	proxy := service.NewProxy(matcher, resolver, nil, logger)
	e := newEcho(proxy, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + strconv.Itoa(cfg.HTTPPort)
		level.Info(logger).Log("msg", "starting gateway", "addr", addr, "routes", len(cfg.Routes.Routes), "registry", cfg.RegistryURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		level.Error(logger).Log("msg", "HTTP server error", "err", err)
	}
	level.Info(logger).Log("msg", "shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		level.Error(logger).Log("msg", "error during server shutdown", "err", err)
	}
}

// Package service implements gateway routing and forwarding.
package service

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"microreg/apierror"
	"microreg/gateway/interfaces"
	"microreg/helpers"
	"microreg/registryclient"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// Proxy forwards requests to the instance the registry returns for the matched route.
// Every request resolves again, so load spreads over live instances and dead ones drop out
// as soon as the registry expires them.
type Proxy struct {
	matcher   interfaces.RouteMatcher
	resolver  interfaces.Resolver
	transport http.RoundTripper
	logger    log.Logger
}

// NewProxy creates a Proxy. A nil transport means http.DefaultTransport.
// Panics on nil matcher, resolver or logger.
func NewProxy(matcher interfaces.RouteMatcher, resolver interfaces.Resolver, transport http.RoundTripper, logger log.Logger) *Proxy {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Proxy{
		matcher:   helpers.NilPanic(matcher, "service.proxy.go: route matcher is required"),
		resolver:  helpers.NilPanic(resolver, "service.proxy.go: resolver is required"),
		transport: transport,
		logger:    log.With(helpers.NilPanic(logger, "service.proxy.go: logger is required"), "component", "proxy"),
	}
}

// Handle is the echo handler for every proxied path.
//
// Returns: nil once the backend response is streamed; entity_not_found when no route matches;
// service_unavailable when no live instance satisfies the route; bad_gateway when the registry
// or the backend cannot be reached.
func (p *Proxy) Handle(ectx echo.Context) error {
	req := ectx.Request()
	route, ok := p.matcher.Match(req.URL.Path)
	if !ok {
		return apierror.NewEntityNotFoundError(fmt.Sprintf("no route for %s", req.URL.Path), nil)
	}

	instance, err := p.resolver.Find(req.Context(), route.Service, route.Version)
	if err != nil {
		if errors.Is(err, registryclient.ErrNotFound) {
			return apierror.NewServiceUnavailableError(
				fmt.Sprintf("no live instance of %s matches %s", route.Service, route.Version), err)
		}
		return apierror.NewBadGatewayError("service registry is unavailable", err)
	}

	target := &url.URL{Scheme: "http", Host: instance.HostPort()}
	var backendErr error
	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			if route.StripPrefix {
				pr.Out.URL.Path = route.StripFrom(pr.In.URL.Path)
				pr.Out.URL.RawPath = route.StripFrom(pr.In.URL.EscapedPath())
			}
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: p.transport,
		ErrorHandler: func(_ http.ResponseWriter, _ *http.Request, err error) {
			backendErr = err
		},
	}
	rp.ServeHTTP(ectx.Response(), req)

	if backendErr != nil {
		return apierror.NewBadGatewayError(fmt.Sprintf("backend %s is unreachable", instance.HostPort()), backendErr)
	}
	level.Debug(p.logger).Log("msg", "proxied request", "path", req.URL.Path, "service", route.Service, "backend", instance.HostPort())
	return nil
}

package interfaces

import (
	"context"

	"microreg/gateway/domain"
	"microreg/registryclient"
)

// RouteMatcher resolves a request path to a route. Implemented by service.routeMatcher.
type RouteMatcher interface {
	// Match returns the route with the longest prefix matching path, or false when none does.
	Match(path string) (domain.Route, bool)
}

// Resolver resolves a service to one live instance. Implemented by *registryclient.Client.
type Resolver interface {
	Find(ctx context.Context, name, constraint string) (registryclient.Instance, error)
}

var _ Resolver = (*registryclient.Client)(nil)

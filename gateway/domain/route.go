// Package domain holds the gateway routing model.
package domain

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// AnyVersion is the constraint used when a route does not name one.
const AnyVersion = "*"

// Route maps a path prefix to a registered service.
// Prefix must start with "/" and matches whole path segments: "/catalog" matches
// "/catalog" and "/catalog/items" but not "/catalogue".
type Route struct {
	Prefix      string
	Service     string
	Version     string
	StripPrefix bool
}

// RouteConfig is the list of routes. Order does not matter; the longest matching prefix wins.
type RouteConfig struct {
	Routes []Route
}

// ValidateRouteConfig checks every route: Prefix is non-empty, starts with "/" and is unique;
// Service is set; Version is a valid version constraint.
//
// Returns: nil when config is valid; *RouteConfigError for the first invalid route.
func ValidateRouteConfig(cfg RouteConfig) error {
	seen := make(map[string]struct{}, len(cfg.Routes))
	for i, r := range cfg.Routes {
		if r.Prefix == "" {
			return &RouteConfigError{Index: i, Reason: "prefix must be non-empty"}
		}
		if r.Prefix[0] != '/' {
			return &RouteConfigError{Index: i, Reason: "prefix must start with /"}
		}
		if _, ok := seen[r.Prefix]; ok {
			return &RouteConfigError{Index: i, Reason: "duplicate prefix " + r.Prefix}
		}
		seen[r.Prefix] = struct{}{}
		if strings.TrimSpace(r.Service) == "" {
			return &RouteConfigError{Index: i, Reason: "service must be non-empty"}
		}
		if _, err := semver.NewConstraint(r.Version); err != nil {
			return &RouteConfigError{Index: i, Reason: "version is not a valid constraint: " + err.Error()}
		}
	}
	return nil
}

// RouteConfigError is returned by ValidateRouteConfig. Index is the 0-based route index.
type RouteConfigError struct {
	Index  int
	Reason string
}

func (e *RouteConfigError) Error() string {
	return "route[" + strconv.Itoa(e.Index) + "]: " + e.Reason
}

// StripFrom removes the route prefix from path when StripPrefix is set. The result always
// starts with "/".
func (r Route) StripFrom(path string) string {
	if !r.StripPrefix {
		return path
	}
	rest := strings.TrimPrefix(path, strings.TrimSuffix(r.Prefix, "/"))
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return rest
}

// Matches reports whether path falls under the route prefix on a segment boundary.
func (r Route) Matches(path string) bool {
	if !strings.HasPrefix(path, r.Prefix) {
		return false
	}
	if len(path) == len(r.Prefix) || strings.HasSuffix(r.Prefix, "/") {
		return true
	}
	return path[len(r.Prefix)] == '/'
}

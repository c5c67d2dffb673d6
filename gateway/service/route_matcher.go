package service

import (
	"sort"

	"microreg/gateway/domain"
)

// routeMatcher implements interfaces.RouteMatcher with longest-prefix matching. Routes are kept
// sorted by descending prefix length so the first match wins.
type routeMatcher struct {
	routes []domain.Route
}

// NewRouteMatcher validates cfg, copies its routes and sorts them for longest-prefix lookup.
func NewRouteMatcher(cfg domain.RouteConfig) (*routeMatcher, error) {
	if err := domain.ValidateRouteConfig(cfg); err != nil {
		return nil, err
	}
	routes := make([]domain.Route, len(cfg.Routes))
	copy(routes, cfg.Routes)
	sort.SliceStable(routes, func(i, j int) bool {
		return len(routes[i].Prefix) > len(routes[j].Prefix)
	})
	return &routeMatcher{routes: routes}, nil
}

func (r *routeMatcher) Match(path string) (domain.Route, bool) {
	for _, route := range r.routes {
		if route.Matches(path) {
			return route, true
		}
	}
	return domain.Route{}, false
}

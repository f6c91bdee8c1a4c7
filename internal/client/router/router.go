// Package router maps client view paths to routes and runs the auth guard
// before each navigation.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ticketapp/internal/common"
)

// Route is a named view. RequiresAuth routes are only entered with a
// persisted session.
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
}

var (
	Home      = Route{Name: "home", Path: "/"}
	Login     = Route{Name: "login", Path: common.LoginPath}
	Signup    = Route{Name: "signup", Path: "/auth/signup"}
	Dashboard = Route{Name: "dashboard", Path: "/dashboard", RequiresAuth: true}
	Tickets   = Route{Name: "tickets", Path: "/tickets", RequiresAuth: true}
)

// DefaultRoutes returns the client's route table.
func DefaultRoutes() []Route {
	return []Route{Home, Login, Signup, Dashboard, Tickets}
}

type Router struct {
	routes []Route
	byPath map[string]Route
	guard  *Guard
}

// New builds a router over routes. Paths must be unique.
func New(guard *Guard, routes ...Route) (*Router, error) {
	r := &Router{guard: guard, byPath: make(map[string]Route, len(routes))}
	for _, rt := range routes {
		p := normalize(rt.Path)
		if _, dup := r.byPath[p]; dup {
			return nil, fmt.Errorf("duplicate route path %q", rt.Path)
		}
		rt.Path = p
		r.byPath[p] = rt
		r.routes = append(r.routes, rt)
	}
	return r, nil
}

func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Resolve returns the route registered for path or common.ErrorNotFound.
// A trailing slash is ignored.
func (r *Router) Resolve(path string) (Route, error) {
	rt, ok := r.byPath[normalize(path)]
	if !ok {
		return Route{}, fmt.Errorf("route %q: %w", path, common.ErrorNotFound)
	}
	return rt, nil
}

// Navigate resolves path and asks the guard whether it may be entered. When
// the guard redirects, the redirect target is returned with redirected set.
func (r *Router) Navigate(ctx context.Context, path string) (Route, bool, error) {
	to, err := r.Resolve(path)
	if err != nil {
		return Route{}, false, err
	}

	d := r.guard.Before(ctx, to)
	if d.Allow {
		return to, false, nil
	}

	target, err := r.Resolve(d.Redirect)
	if err != nil {
		return Route{}, false, fmt.Errorf("redirect from %s: %w", to.Path, err)
	}
	return target, true, nil
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

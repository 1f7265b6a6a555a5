// SPDX-License-Identifier: AGPL-3.0-or-later

package routes

import (
	"fmt"
	"slices"
	"strings"
)

// MiddlewareDescriptor is a middleware declared on a controller, optionally
// restricted to a subset of its methods.
type MiddlewareDescriptor struct {
	Name   string
	Only   []string
	Except []string
}

// AppliesTo reports whether the descriptor's options keep it for method.
func (d MiddlewareDescriptor) AppliesTo(method string) bool {
	if len(d.Only) > 0 && !slices.Contains(d.Only, method) {
		return false
	}
	if len(d.Except) > 0 && slices.Contains(d.Except, method) {
		return false
	}
	return true
}

// PatternMatcher finds the globally registered pattern filters that match a
// request for uri with the given HTTP method.
type PatternMatcher interface {
	PatternFilters(method, uri string) []string
}

// MiddlewareProvider returns the middleware a controller declares for the
// given action identifier. A lookup failure aborts the listing.
type MiddlewareProvider interface {
	MiddlewareFor(action string) ([]MiddlewareDescriptor, error)
}

// Resolver computes the combined middleware applying to a route.
type Resolver struct {
	patterns    PatternMatcher
	controllers MiddlewareProvider
	aliases     map[string]string
}

// NewResolver creates a resolver. Any collaborator may be nil, in which case
// the corresponding source contributes nothing.
func NewResolver(patterns PatternMatcher, controllers MiddlewareProvider, aliases map[string]string) *Resolver {
	return &Resolver{
		patterns:    patterns,
		controllers: controllers,
		aliases:     aliases,
	}
}

// Resolve returns the unique middleware names for rt in first-seen order:
// route middleware, then pattern filters per method, then controller middleware.
func (r *Resolver) Resolve(rt Route) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(names ...string) {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	add(rt.Middleware...)

	if r.patterns != nil {
		for _, method := range rt.Methods {
			add(r.patterns.PatternFilters(method, rt.URI)...)
		}
	}

	controllerMW, err := r.controllerMiddleware(rt.Action)
	if err != nil {
		return nil, err
	}
	add(controllerMW...)

	return out, nil
}

func (r *Resolver) controllerMiddleware(action string) ([]string, error) {
	_, method, ok := SplitAction(action)
	if !ok || r.controllers == nil {
		return nil, nil
	}

	descriptors, err := r.controllers.MiddlewareFor(action)
	if err != nil {
		return nil, fmt.Errorf("resolving controller middleware for %s: %w", action, err)
	}

	var out []string
	for _, d := range descriptors {
		if !d.AppliesTo(method) {
			continue
		}
		if canonical, ok := r.aliases[d.Name]; ok {
			out = append(out, canonical)
			continue
		}
		out = append(out, d.Name)
	}
	return out, nil
}

// SplitAction splits a "Controller@method" action. ok is false for inline
// handlers and for actions without a method segment.
func SplitAction(action string) (controller, method string, ok bool) {
	if action == "" || action == ClosureAction {
		return "", "", false
	}
	controller, method, found := strings.Cut(action, "@")
	if !found || controller == "" || method == "" {
		return "", "", false
	}
	return controller, method, true
}

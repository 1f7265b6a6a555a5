// SPDX-License-Identifier: AGPL-3.0-or-later

package manifest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bartekus/tenancy/internal/routes"
)

// ErrUnknownController is returned when a route action names a controller
// the manifest does not declare.
var ErrUnknownController = errors.New("unknown controller")

var (
	_ routes.Source             = (*Manifest)(nil)
	_ routes.PatternMatcher     = (*Manifest)(nil)
	_ routes.MiddlewareProvider = (*Manifest)(nil)
)

// RoutesFor returns the routes registered for domain, in manifest order.
// An unknown domain has no routes.
func (m *Manifest) RoutesFor(ctx context.Context, domain string) ([]routes.Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, ok := m.tenant(domain)
	if !ok {
		return nil, nil
	}

	out := make([]routes.Route, 0, len(t.Routes))
	for _, r := range t.Routes {
		rt := routes.Route{
			Domain:     r.Domain,
			Methods:    r.Methods,
			URI:        r.URI,
			Name:       r.Name,
			Action:     r.Action,
			Middleware: r.Middleware,
		}
		if rt.Domain == "" {
			rt.Domain = t.Domain
		}
		if rt.Action == "" {
			rt.Action = routes.ClosureAction
		}
		out = append(out, rt)
	}
	return out, nil
}

// PatternFilters returns the names of the pattern filters matching a request
// for uri with method. Wildcard patterns are checked before regex patterns.
func (m *Manifest) PatternFilters(method, uri string) []string {
	path := requestPath(uri)

	var names []string
	collect := func(regex bool) {
		for _, p := range m.Patterns {
			if (p.Regex != "") != regex || p.compiled == nil {
				continue
			}
			if !p.appliesToMethod(method) || !p.compiled.MatchString(path) {
				continue
			}
			names = append(names, filterNames(p.Filter)...)
		}
	}
	collect(false)
	collect(true)

	return names
}

// MiddlewareFor returns the middleware declared by the controller of action.
func (m *Manifest) MiddlewareFor(action string) ([]routes.MiddlewareDescriptor, error) {
	controller, _, ok := routes.SplitAction(action)
	if !ok {
		return nil, nil
	}

	c, ok := m.Controllers[controller]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownController, controller)
	}

	out := make([]routes.MiddlewareDescriptor, 0, len(c.Middleware))
	for _, mw := range c.Middleware {
		out = append(out, routes.MiddlewareDescriptor{
			Name:   mw.Name,
			Only:   mw.Only,
			Except: mw.Except,
		})
	}
	return out, nil
}

// Aliases returns the middleware alias map.
func (m *Manifest) Aliases() map[string]string {
	return m.Middleware
}

// TenantSummaries returns every tenant with its route count, sorted by domain.
func (m *Manifest) TenantSummaries() []TenantSummary {
	out := make([]TenantSummary, 0, len(m.Tenants))
	for _, t := range m.Tenants {
		out = append(out, TenantSummary{Domain: t.Domain, Routes: len(t.Routes)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Domain < out[j].Domain
	})
	return out
}

func (m *Manifest) tenant(domain string) (Tenant, bool) {
	for _, t := range m.Tenants {
		if t.Domain == domain {
			return t, true
		}
	}
	return Tenant{}, false
}

func (p PatternFilter) appliesToMethod(method string) bool {
	if len(p.Methods) == 0 {
		return true
	}
	for _, m := range p.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// requestPath mirrors the host request path: no surrounding slashes, "/" for the root.
func requestPath(uri string) string {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		uri = uri[:i]
	}
	path := strings.Trim(uri, "/")
	if path == "" {
		return "/"
	}
	return path
}

// filterNames splits "auth|csrf:strict" into ["auth", "csrf"].
func filterNames(filter string) []string {
	var names []string
	for _, part := range strings.Split(filter, "|") {
		name, _, _ := strings.Cut(strings.TrimSpace(part), ":")
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

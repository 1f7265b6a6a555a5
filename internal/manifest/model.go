// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Tenancy - Tenancy is a console companion for multi-tenant web applications.
It inspects the route table registered for each tenant domain and renders it for humans and tooling.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package manifest loads the route manifest exported by the host application
// and serves it as the tenant route source and middleware registries.
package manifest

import (
	"regexp"
)

// Manifest matches the top-level shape of the route manifest for YAML decoding.
type Manifest struct {
	Middleware  map[string]string     `yaml:"middleware"`
	Patterns    []PatternFilter       `yaml:"patterns"`
	Controllers map[string]Controller `yaml:"controllers"`
	Tenants     []Tenant              `yaml:"tenants"`
}

// PatternFilter attaches a named filter to every request path matching
// Pattern (wildcard) or Regex, optionally limited to some methods.
type PatternFilter struct {
	Pattern string   `yaml:"pattern"`
	Regex   string   `yaml:"regex"`
	Filter  string   `yaml:"filter"`
	Methods []string `yaml:"methods"`

	compiled *regexp.Regexp
}

// Controller lists the middleware a controller declares.
type Controller struct {
	Middleware []ControllerMiddleware `yaml:"middleware"`
}

// ControllerMiddleware is a controller middleware with its method options.
type ControllerMiddleware struct {
	Name   string   `yaml:"name"`
	Only   []string `yaml:"only"`
	Except []string `yaml:"except"`
}

// Tenant groups the routes registered for one domain.
type Tenant struct {
	Domain string  `yaml:"domain"`
	Routes []Route `yaml:"routes"`
}

// Route is a single route entry. Domain defaults to the tenant's domain.
type Route struct {
	Domain     string   `yaml:"domain"`
	Methods    []string `yaml:"methods"`
	URI        string   `yaml:"uri"`
	Name       string   `yaml:"name"`
	Action     string   `yaml:"action"`
	Middleware []string `yaml:"middleware"`
}

// TenantSummary is a tenant with its route count.
type TenantSummary struct {
	Domain string `json:"domain"`
	Routes int    `json:"routes"`
}

// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Tenancy - Tenancy is a console companion for multi-tenant web applications.
It inspects the route table registered for each tenant domain and renders it for humans and tooling.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package routes projects tenant route metadata into display records and
// filters, sorts and orders them for listing.
package routes

import (
	"errors"
	"fmt"
	"strings"
)

// ClosureAction is the action name the host reports for inline handlers.
const ClosureAction = "Closure"

// Route is a route as registered by the host application.
type Route struct {
	Domain     string
	Methods    []string
	URI        string
	Name       string
	Action     string
	Middleware []string
}

// Record is the flat, display-ready projection of a Route.
type Record struct {
	Domain     string `json:"domain"`
	Method     string `json:"method"`
	URI        string `json:"uri"`
	Name       string `json:"name"`
	Action     string `json:"action"`
	Middleware string `json:"middleware"`
}

// Field names a Record column.
type Field string

const (
	FieldDomain     Field = "domain"
	FieldMethod     Field = "method"
	FieldURI        Field = "uri"
	FieldName       Field = "name"
	FieldAction     Field = "action"
	FieldMiddleware Field = "middleware"
)

// ErrInvalidField is returned when a column or sort key is not a Record field.
var ErrInvalidField = errors.New("invalid route field")

// Fields returns every Record field in display order.
func Fields() []Field {
	return []Field{FieldDomain, FieldMethod, FieldURI, FieldName, FieldAction, FieldMiddleware}
}

// ParseField resolves a field name case-insensitively.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidField, s, joinFields(Fields()))
}

// ParseFields resolves a list of field names, preserving order.
func ParseFields(names []string) ([]Field, error) {
	out := make([]Field, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		f, err := ParseField(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Header returns the column title for the field.
func (f Field) Header() string {
	switch f {
	case FieldURI:
		return "URI"
	case "":
		return ""
	default:
		return strings.ToUpper(string(f[:1])) + string(f[1:])
	}
}

// Value returns the record's value for f. Unknown fields yield "".
func (r Record) Value(f Field) string {
	switch f {
	case FieldDomain:
		return r.Domain
	case FieldMethod:
		return r.Method
	case FieldURI:
		return r.URI
	case FieldName:
		return r.Name
	case FieldAction:
		return r.Action
	case FieldMiddleware:
		return r.Middleware
	}
	return ""
}

// Row returns the record's values for the given columns.
func (r Record) Row(columns []Field) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = r.Value(c)
	}
	return row
}

// Headers returns the column titles for the given fields.
func Headers(columns []Field) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Header()
	}
	return out
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

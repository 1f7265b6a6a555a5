// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Tenancy - Tenancy is a console companion for multi-tenant web applications.
It inspects the route table registered for each tenant domain and renders it for humans and tooling.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package tenant

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bartekus/tenancy/cmd/tenancy/internal/cliconfig"
	"github.com/bartekus/tenancy/cmd/tenancy/internal/clierr"
	"github.com/bartekus/tenancy/internal/manifest"
	"github.com/bartekus/tenancy/internal/routes"
)

// NoRoutesMessage is printed instead of a table when the tenant has no routes.
const NoRoutesMessage = "The specified tenant does not have any routes."

type routeListOptions struct {
	method     string
	name       string
	path       string
	exceptPath []string
	sort       string
	reverse    bool
	columns    []string
	compact    bool
	format     string
	output     string
}

func NewRouteListCommand(v *viper.Viper) *cobra.Command {
	var opts routeListOptions

	cmd := &cobra.Command{
		Use:   "tenant:route:list <domain>",
		Short: "List all registered routes for a tenant",
		Long: `List the routes registered for a tenant domain, with the middleware that applies to each.

Route middleware, matching pattern filters and controller middleware are combined
in that order without duplicates. Filters are case-sensitive substring matches.`,
		Example: `  # List every route of a tenant, ordered by URI
  tenancy tenant:route:list acme.test

  # Only named user routes, newest URIs first
  tenancy tenant:route:list acme.test --name=users --reverse

  # Method, URI and action only, as JSON
  tenancy tenant:route:list acme.test --compact --format=json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return clierr.Usage("tenant:route:list", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRouteList(cmd, v, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.method, "method", "", "filter the routes by method")
	flags.StringVar(&opts.name, "name", "", "filter the routes by name")
	flags.StringVar(&opts.path, "path", "", "filter the routes by path")
	flags.StringSliceVar(&opts.exceptPath, "except-path", nil, "do not display the routes matching the given path fragments")
	flags.StringVar(&opts.sort, "sort", string(routes.FieldURI), "the column (domain, method, uri, name, action, middleware) to sort by")
	flags.BoolVarP(&opts.reverse, "reverse", "r", false, "reverse the ordering of the routes")
	flags.StringSliceVar(&opts.columns, "columns", nil, "columns to include in the route table")
	flags.BoolVarP(&opts.compact, "compact", "c", false, "only show method, URI and action columns")
	flags.StringVar(&opts.format, "format", string(formatTable), "output format (table, markdown, json)")
	flags.StringVarP(&opts.output, "output", "o", "", "write the listing to a file instead of stdout")

	return cmd
}

func runRouteList(cmd *cobra.Command, v *viper.Viper, domain string, opts routeListOptions) error {
	ctx := cmd.Context()
	cfg := cliconfig.Load(v)

	log, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return clierr.Usage("tenant:route:list: configure logger", err)
	}

	sortField, err := routes.ParseField(opts.sort)
	if err != nil {
		return clierr.Usage("tenant:route:list: --sort", err)
	}
	columns, err := selectColumns(opts)
	if err != nil {
		return clierr.Usage("tenant:route:list: --columns", err)
	}
	format, err := parseFormat(opts.format)
	if err != nil {
		return clierr.Usage("tenant:route:list: --format", err)
	}

	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return clierr.Wrap(clierr.ExitFailure, "tenant:route:list: load manifest", err)
	}
	log.DebugWithContext(ctx, "loaded manifest",
		zap.String("path", cfg.Manifest),
		zap.Int("tenants", len(m.Tenants)),
	)

	lister := routes.NewLister(m, routes.NewResolver(m, m, m.Aliases()), log)
	records, err := lister.List(ctx, domain, routes.Query{
		Criteria: routes.Criteria{
			Name:       opts.name,
			Path:       opts.path,
			Method:     opts.method,
			ExceptPath: opts.exceptPath,
		},
		Sort: routes.SortSpec{Field: sortField, Reverse: opts.reverse},
	})
	if errors.Is(err, routes.ErrNoRoutes) {
		out := cmd.OutOrStdout()
		red := cfg.Painter(out, color.FgRed)
		_, _ = fmt.Fprintln(out, red(NoRoutesMessage))
		return nil
	}
	if err != nil {
		return clierr.Wrap(clierr.ExitFailure, "tenant:route:list", err)
	}

	return writeListing(cmd, opts.output, func(w io.Writer) (string, error) {
		return renderRecords(format, records, columns, cfg.Painter(w, color.FgGreen))
	})
}

func selectColumns(opts routeListOptions) ([]routes.Field, error) {
	if opts.compact {
		return []routes.Field{routes.FieldMethod, routes.FieldURI, routes.FieldAction}, nil
	}
	if len(opts.columns) == 0 {
		return routes.Fields(), nil
	}
	columns, err := routes.ParseFields(opts.columns)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return routes.Fields(), nil
	}
	return columns, nil
}

func renderRecords(format outputFormat, records []routes.Record, columns []routes.Field, paint func(string) string) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row(columns))
	}

	doc := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		obj := make(map[string]string, len(columns))
		for _, c := range columns {
			obj[string(c)] = rec.Value(c)
		}
		doc = append(doc, obj)
	}

	return render(format, routes.Headers(columns), rows, paint, doc)
}

// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Tenancy - Tenancy is a console companion for multi-tenant web applications.
It inspects the route table registered for each tenant domain and renders it for humans and tooling.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands builds the tenancy command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/tenancy/cmd/tenancy/commands/tenant"
	"github.com/bartekus/tenancy/cmd/tenancy/internal/cliconfig"
	"github.com/bartekus/tenancy/cmd/tenancy/internal/clierr"
)

// NewRootCmd constructs the Tenancy root Cobra command.
// Flags are read from the command line, TENANCY_* environment variables or
// tenancy.yaml, in that order.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("TENANCY_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	v := cliconfig.New()

	cmd := &cobra.Command{
		Use:           "tenancy",
		Short:         "Tenancy - tenant route inspection",
		Long:          "Tenancy inspects the routes registered for each tenant domain of a multi-tenant application.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliconfig.ReadInConfig(cmd, v); err != nil {
				return clierr.Usage("tenancy", err)
			}
			return nil
		},
	}

	cliconfig.BindFlags(cmd, v)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierr.Usage(c.Name(), err)
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of Tenancy",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tenancy version %s\n", version)
		},
	})

	cmd.AddCommand(tenant.NewRouteListCommand(v))
	cmd.AddCommand(tenant.NewTenantListCommand(v))

	return cmd
}

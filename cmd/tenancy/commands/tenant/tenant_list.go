// SPDX-License-Identifier: AGPL-3.0-or-later

package tenant

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bartekus/tenancy/cmd/tenancy/internal/cliconfig"
	"github.com/bartekus/tenancy/cmd/tenancy/internal/clierr"
	"github.com/bartekus/tenancy/internal/manifest"
)

// NoTenantsMessage is printed when the manifest declares no tenants.
const NoTenantsMessage = "No tenants found."

func NewTenantListCommand(v *viper.Viper) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "tenant:list",
		Short: "List the tenants declared in the route manifest",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return clierr.Usage("tenant:list", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cliconfig.Load(v)
			log, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return clierr.Usage("tenant:list: configure logger", err)
			}

			f, err := parseFormat(format)
			if err != nil {
				return clierr.Usage("tenant:list: --format", err)
			}

			m, err := manifest.Load(cfg.Manifest)
			if err != nil {
				return clierr.Wrap(clierr.ExitFailure, "tenant:list: load manifest", err)
			}

			summaries := m.TenantSummaries()
			log.Debug("listing tenants", zap.String("path", cfg.Manifest), zap.Int("tenants", len(summaries)))

			if len(summaries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), NoTenantsMessage)
				return nil
			}

			return writeListing(cmd, output, func(w io.Writer) (string, error) {
				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, []string{s.Domain, strconv.Itoa(s.Routes)})
				}
				return render(f, []string{"Domain", "Routes"}, rows, cfg.Painter(w, color.FgGreen), summaries)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatTable), "output format (table, markdown, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the listing to a file instead of stdout")

	return cmd
}

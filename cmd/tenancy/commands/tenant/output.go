// SPDX-License-Identifier: AGPL-3.0-or-later

package tenant

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bartekus/tenancy/cmd/tenancy/internal/clierr"
	"github.com/bartekus/tenancy/internal/projection"
)

type outputFormat string

const (
	formatTable    outputFormat = "table"
	formatMarkdown outputFormat = "markdown"
	formatJSON     outputFormat = "json"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatTable, formatMarkdown, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected table, markdown or json)", s)
	}
}

// render produces the listing text. doc is the value encoded for JSON output.
func render(format outputFormat, headers []string, rows [][]string, paint func(string) string, doc any) (string, error) {
	switch format {
	case formatMarkdown:
		return projection.RenderTable(headers, rows), nil
	case formatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding json: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return projection.RenderBoxTable(headers, rows, paint), nil
	}
}

// writeListing renders to stdout, or atomically to path when one is given.
// Colors are only requested for stdout.
func writeListing(cmd *cobra.Command, path string, renderTo func(w io.Writer) (string, error)) error {
	out := cmd.OutOrStdout()

	if path == "" {
		text, err := renderTo(out)
		if err != nil {
			return clierr.Wrap(clierr.ExitFailure, cmd.Name(), err)
		}
		_, err = io.WriteString(out, text)
		return err
	}

	text, err := renderTo(nil)
	if err != nil {
		return clierr.Wrap(clierr.ExitFailure, cmd.Name(), err)
	}
	if err := projection.AtomicWrite(path, []byte(text)); err != nil {
		return clierr.Wrap(clierr.ExitFailure, fmt.Sprintf("%s: write %s", cmd.Name(), path), err)
	}

	_, _ = fmt.Fprintf(out, "✓ Wrote %s output to %s\n", cmd.Name(), path)
	return nil
}

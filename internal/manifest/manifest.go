// SPDX-License-Identifier: AGPL-3.0-or-later

package manifest

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // manifest path is operator supplied
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a manifest document. JSON documents are accepted.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks structural integrity and compiles pattern filters.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool)

	for i, t := range m.Tenants {
		if t.Domain == "" {
			return fmt.Errorf("tenant at index %d missing domain", i)
		}
		if seen[t.Domain] {
			return fmt.Errorf("duplicate tenant domain: %s", t.Domain)
		}
		seen[t.Domain] = true

		for j, r := range t.Routes {
			if r.URI == "" {
				return fmt.Errorf("tenant %s: route at index %d missing uri", t.Domain, j)
			}
			if len(r.Methods) == 0 {
				return fmt.Errorf("tenant %s: route %s has no methods", t.Domain, r.URI)
			}
		}
	}

	for i := range m.Patterns {
		p := &m.Patterns[i]
		if p.Filter == "" {
			return fmt.Errorf("pattern filter at index %d missing filter name", i)
		}

		switch {
		case p.Pattern != "" && p.Regex != "":
			return fmt.Errorf("pattern filter %s: pattern and regex are mutually exclusive", p.Filter)
		case p.Pattern != "":
			p.compiled = wildcardRegexp(p.Pattern)
		case p.Regex != "":
			re, err := regexp.Compile(p.Regex)
			if err != nil {
				return fmt.Errorf("pattern filter %s: invalid regex: %w", p.Filter, err)
			}
			p.compiled = re
		default:
			return fmt.Errorf("pattern filter %s: pattern or regex is required", p.Filter)
		}
	}

	for name, c := range m.Controllers {
		for i, mw := range c.Middleware {
			if mw.Name == "" {
				return fmt.Errorf("controller %s: middleware at index %d missing name", name, i)
			}
		}
	}

	return nil
}

// wildcardRegexp compiles a pattern where "*" matches any run of characters,
// slashes included.
func wildcardRegexp(pattern string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, `\*`, ".*")
	return regexp.MustCompile(`^` + quoted + `\z`)
}

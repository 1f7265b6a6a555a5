package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/tenancy/cmd/tenancy/internal/clierr"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)

	for _, name := range []string{"tenant:route:list", "tenant:list", "version"} {
		assert.Contains(t, out, name)
	}
	for _, flag := range []string{"--manifest", "--config", "--log-level", "--log-format", "--no-color", "--verbose"} {
		assert.Contains(t, out, flag)
	}
}

func TestRouteListHelpDocumentsFlags(t *testing.T) {
	out, err := run(t, "tenant:route:list", "--help")
	require.NoError(t, err)

	for _, flag := range []string{"--method", "--name", "--path", "--except-path", "--sort", "--reverse", "--columns", "--compact", "--format", "--output"} {
		assert.Contains(t, out, flag)
	}
}

func TestVersion(t *testing.T) {
	t.Setenv("TENANCY_VERSION", "1.2.3")

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Tenancy version 1.2.3\n", out)
}

func TestVersionDefault(t *testing.T) {
	t.Setenv("TENANCY_VERSION", "")

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Tenancy version 0.0.0-dev\n", out)
}

func TestUnknownCommandIsFailure(t *testing.T) {
	_, err := run(t, "tenant:destroy")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitFailure, clierr.ExitCodeOf(err))
}

func TestMissingConfigFileIsUsageError(t *testing.T) {
	_, err := run(t, "version", "--config", "/nonexistent/tenancy.yaml")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}

package cliconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand(t *testing.T, args ...string) (*cobra.Command, func() Config) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	v := New()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	BindFlags(cmd, v)
	require.NoError(t, cmd.ParseFlags(args))
	require.NoError(t, ReadInConfig(cmd, v))

	return cmd, func() Config { return Load(v) }
}

func TestLoadDefaults(t *testing.T) {
	_, load := newCommand(t)
	assert.Equal(t, DefaultConfig(), load())
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TENANCY_MANIFEST", "from-env.yaml")
	t.Setenv("TENANCY_LOG_LEVEL", "info")

	_, load := newCommand(t, "--manifest", "from-flag.yaml")
	cfg := load()
	assert.Equal(t, "from-flag.yaml", cfg.Manifest)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenancy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("manifest: from-file.yaml\nlog:\n  format: json\nno-color: true\n"), 0o600))
	t.Setenv("TENANCY_MANIFEST", "from-env.yaml")

	_, load := newCommand(t, "--config", path)
	cfg := load()
	assert.Equal(t, "from-env.yaml", cfg.Manifest)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.NoColor)
}

func TestReadInConfig_ExplicitFileMustExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v := New()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, v)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))

	err := ReadInConfig(cmd, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLogger_VerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "error", LogFormat: "json", Verbose: true}

	log, err := cfg.Logger(&buf)
	require.NoError(t, err)
	log.Debug("probe")
	assert.Contains(t, buf.String(), `"msg":"probe"`)
}

func TestLogger_InvalidLevel(t *testing.T) {
	_, err := Config{LogLevel: "loud", LogFormat: "text"}.Logger(&bytes.Buffer{})
	require.Error(t, err)
}

func TestPainter(t *testing.T) {
	cfg := DefaultConfig()

	// buffers are never terminals
	paint := cfg.Painter(&bytes.Buffer{}, color.FgRed)
	assert.Equal(t, "plain", paint("plain"))

	cfg.NoColor = true
	assert.False(t, cfg.ColorEnabled(os.Stdout))
	assert.Equal(t, "plain", cfg.Painter(os.Stdout, color.FgRed)("plain"))
}

// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cliconfig bridges cobra flags, TENANCY_* environment variables and
// the optional tenancy.yaml config file through viper.
package cliconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/bartekus/tenancy/internal/logger"
)

const (
	EnvPrefix = "TENANCY"

	manifestKey  = "manifest"
	logLevelKey  = "log.level"
	logFormatKey = "log.format"
	noColorKey   = "no-color"
	verboseKey   = "verbose"
)

// Config is the resolved configuration shared by all commands.
type Config struct {
	Manifest  string
	LogLevel  string
	LogFormat string
	NoColor   bool
	Verbose   bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Manifest:  "routes.yaml",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// New returns a viper instance reading TENANCY_* variables and tenancy.yaml
// from the working directory or $HOME/.tenancy.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("tenancy")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for _, path := range []string{".", "$HOME/.tenancy"} {
		v.AddConfigPath(path)
	}
	return v
}

// BindFlags registers the persistent flags on command and binds them to v.
func BindFlags(command *cobra.Command, v *viper.Viper) {
	defaultConfig := DefaultConfig()
	flags := command.PersistentFlags()

	flags.String("config", "", "path to a tenancy config file (default: ./tenancy.yaml or $HOME/.tenancy/tenancy.yaml)")

	flags.String("manifest", defaultConfig.Manifest, "path to the route manifest exported by the application")
	mustBindPFlag(v, manifestKey, flags.Lookup("manifest"))

	flags.String("log-level", defaultConfig.LogLevel, "the log level to use (none, debug, info, warn, error)")
	mustBindPFlag(v, logLevelKey, flags.Lookup("log-level"))

	flags.String("log-format", defaultConfig.LogFormat, "the log format to output logs in (text, json)")
	mustBindPFlag(v, logFormatKey, flags.Lookup("log-format"))

	flags.Bool("no-color", defaultConfig.NoColor, "disable colored output")
	mustBindPFlag(v, noColorKey, flags.Lookup("no-color"))

	flags.BoolP("verbose", "v", defaultConfig.Verbose, "enable verbose output (debug logging)")
	mustBindPFlag(v, verboseKey, flags.Lookup("verbose"))
}

// ReadInConfig loads the config file named by --config, or the first
// tenancy.yaml found on the search path. A missing default file is not an error.
func ReadInConfig(command *cobra.Command, v *viper.Viper) error {
	path, err := command.Flags().GetString("config")
	if err != nil {
		return err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load resolves the configuration from v.
func Load(v *viper.Viper) Config {
	return Config{
		Manifest:  v.GetString(manifestKey),
		LogLevel:  v.GetString(logLevelKey),
		LogFormat: v.GetString(logFormatKey),
		NoColor:   v.GetBool(noColorKey),
		Verbose:   v.GetBool(verboseKey),
	}
}

// Logger builds the command logger writing to w.
func (c Config) Logger(w io.Writer) (logger.Logger, error) {
	level := c.LogLevel
	if c.Verbose {
		level = "debug"
	}
	return logger.NewLogger(w, c.LogFormat, level)
}

// ColorEnabled reports whether output written to w may carry ANSI colors.
func (c Config) ColorEnabled(w io.Writer) bool {
	if c.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Painter returns a function coloring text with attrs when colors are enabled
// for w, and the identity function otherwise.
func (c Config) Painter(w io.Writer, attrs ...color.Attribute) func(string) string {
	if !c.ColorEnabled(w) {
		return func(s string) string { return s }
	}
	col := color.New(attrs...)
	col.EnableColor()
	return func(s string) string { return col.Sprint(s) }
}

// mustBindPFlag attempts to bind a specific key to a pflag (as used by cobra) and panics
// if the binding fails with a non-nil error.
func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

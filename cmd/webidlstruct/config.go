package main

import (
	"bytes"
	"io"
	"os"

	"github.com/mstoykov/envconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = ".webidlstruct.yaml"

const (
	flagLogLevel = "log-level"
	flagFormat   = "format"
	flagNoColor  = "no-color"
	flagInclude  = "include"
)

const (
	FormatYAML   = "yaml"
	FormatPretty = "pretty"
)

// Config is the CLI configuration. Later sources override earlier ones:
// defaults, the YAML config file, the environment and finally flags.
type Config struct {
	LogLevel string   `yaml:"logLevel" envconfig:"WEBIDLSTRUCT_LOG_LEVEL"`
	Format   string   `yaml:"format" envconfig:"WEBIDLSTRUCT_FORMAT"`
	NoColor  bool     `yaml:"noColor" envconfig:"WEBIDLSTRUCT_NO_COLOR"`
	Include  []string `yaml:"include" envconfig:"WEBIDLSTRUCT_INCLUDE"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		LogLevel: zerolog.WarnLevel.String(),
		Format:   FormatYAML,
		Include:  []string{"**/*.webidl"},
	}
}

// Validate checks the values that have a fixed set of choices.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	switch c.Format {
	case FormatYAML, FormatPretty:
	default:
		return errors.Errorf("invalid format %q, expected %s or %s", c.Format, FormatYAML, FormatPretty)
	}
	return nil
}

// loadConfig layers the config file at path and the environment read
// through lookup over the defaults. An empty path reads the default config
// file if it exists.
func loadConfig(fs afero.Fs, path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, errors.Errorf("parsing config file %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return cfg, errors.Errorf("reading config file %s: %w", path, err)
	}

	if err := envconfig.Process("", &cfg, lookup); err != nil {
		return cfg, errors.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags explicitly set on cmd.
func applyFlags(cfg *Config, cmd *cobra.Command) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed(flagLogLevel) {
		if cfg.LogLevel, err = flags.GetString(flagLogLevel); err != nil {
			return errors.Errorf("reading --%s: %w", flagLogLevel, err)
		}
	}
	if flags.Changed(flagFormat) {
		if cfg.Format, err = flags.GetString(flagFormat); err != nil {
			return errors.Errorf("reading --%s: %w", flagFormat, err)
		}
	}
	if flags.Changed(flagNoColor) {
		if cfg.NoColor, err = flags.GetBool(flagNoColor); err != nil {
			return errors.Errorf("reading --%s: %w", flagNoColor, err)
		}
	}
	if flags.Changed(flagInclude) {
		if cfg.Include, err = flags.GetStringSlice(flagInclude); err != nil {
			return errors.Errorf("reading --%s: %w", flagInclude, err)
		}
	}
	return nil
}

package main

import (
	"context"
	"io"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	a := &app{
		fs:     afero.NewOsFs(),
		lookup: os.LookupEnv,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	if err := newRootCommand(a).ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}
	return nil
}

// app is the state shared by all commands.
type app struct {
	fs     afero.Fs
	lookup func(key string) (string, bool)
	out    io.Writer
	errOut io.Writer

	configPath string
	cfg        Config
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "webidlstruct",
		Short:         "Parse WebIDL into typed ASTs and structural trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		root.Version = "unknown"
	} else {
		root.Version = info.Main.Version
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file (default "+defaultConfigPath+" if present)")
	flags.String(flagLogLevel, "", "log level (trace, debug, info, warn, error)")
	flags.String(flagFormat, "", "output format of the ast command (yaml, pretty)")
	flags.Bool(flagNoColor, false, "disable colored output")
	flags.StringSlice(flagInclude, nil, "glob patterns of files to load when none are given")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := a.configure(cmd); err != nil {
			return err
		}
		cmd.SetContext(a.logger().WithContext(cmd.Context()))
		return nil
	}

	root.AddCommand(
		NewASTCommand(a),
		NewTreeCommand(a),
		NewCheckCommand(a),
		NewResolveCommand(a),
	)
	return root
}

// configure loads the configuration and applies the flags set on cmd.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.fs, a.configPath, a.lookup)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, cmd); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, NoColor: a.cfg.NoColor}).
		Level(level).With().Timestamp().Logger()
}

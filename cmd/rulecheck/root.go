package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhn78/framework/pkg/config"
	"github.com/jhn78/framework/pkg/logger"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	settings config.Settings
	log      *slog.Logger
	out      io.Writer
	errOut   io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var (
		envFile  string
		logLevel string
	)
	a := &app{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "rulecheck",
		Short: "Validate records against a declarative rule schema",
		Long: `rulecheck checks YAML records against a schema of property rules and
state requirements.

Settings are read from the environment (and a .env file when present):
  APP_ENV, APP_SERVICE, VALIDATION_STRICT, LOG_LEVEL, LOG_FORMAT

Workflow:
  1. Describe: rulecheck describe --schema order.yaml
  2. Validate: rulecheck validate --schema order.yaml orders.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(envFile, logLevel)
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load settings from this .env file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newDescribeCmd(a))
	cmd.AddCommand(newRulesCmd(a))
	return cmd
}

func (a *app) init(envFile, logLevel string) error {
	var err error
	if envFile != "" {
		a.settings, err = config.LoadFile(envFile)
	} else {
		a.settings, err = config.Load()
	}
	if err != nil {
		return err
	}
	if logLevel != "" {
		a.settings.LogLevel = logLevel
	}
	level, err := a.settings.Level()
	if err != nil {
		return err
	}

	a.log = logger.New(
		logger.WithEnvironment(a.settings.Env, a.settings.Service),
		logger.WithFormat(logger.Format(strings.ToLower(a.settings.LogFormat))),
		logger.WithLevel(level),
		logger.WithOutput(a.errOut),
	)
	a.log.Debug("settings loaded",
		slog.Bool("strict", a.settings.Strict),
		slog.String("level", level.String()),
	)
	return nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

package main

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/showfinder/showfinder/internal/client"
	"github.com/showfinder/showfinder/internal/config"
)

// Version is set at build time with -ldflags.
var Version = "development"

// deps holds what the commands construct, so tests can substitute fakes.
type deps struct {
	newClient func(cfg *config.Config, opts ...client.Option) client.Client
}

func defaultDeps() deps {
	return deps{newClient: client.NewClient}
}

func newRootCmd(d deps) *cobra.Command {
	var (
		configFlag   string
		logLevelFlag string
	)

	serve := newServeCmd(d)

	root := &cobra.Command{
		Use:     "showfinder",
		Version: Version,
		Short:   "Search TV shows on TVMaze and browse their episodes",

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFlag != "" {
				if _, err := config.Reload(configFlag); err != nil {
					return err
				}
			}
			if logLevelFlag != "" {
				if err := config.SetLogLevel(logLevelFlag); err != nil {
					return err
				}
			}
			logger := config.GetLogger()
			logger.Debug().Str("command", cmd.Name()).Int("args", len(args)).Msg("Executing command")
			return nil
		},
		RunE: serve.RunE,
	}

	root.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a config file (default ./config.yaml or ./config/config.yaml)")
	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (trace, debug, info, warn, error)")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(serve, newSearchCmd(d), newEpisodesCmd(d))
	return root
}

// initSentry enables error reporting when a DSN is configured. The returned
// function flushes buffered events.
func initSentry(cfg *config.Config) func() {
	logger := config.GetLogger()
	if cfg.Sentry.DSN == "" {
		return func() {}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     "showfinder@" + Version,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialise Sentry, continuing without error reporting")
		return func() {}
	}

	logger.Info().Str("environment", cfg.Sentry.Environment).Msg("Sentry error reporting enabled")
	return func() { sentry.Flush(2 * time.Second) }
}

package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/quatton/qrender/pkg/qconfig"
	"github.com/quatton/qrender/pkg/qlog"
	"github.com/spf13/cobra"
)

type contextKey string

const (
	configContextKey contextKey = "qrenderconfig"
	loggerContextKey contextKey = "qrenderlogger"
)

var (
	cfgFile string
	verbose bool
	quiet   bool

	rootCmd = &cobra.Command{
		Use:   "qrender",
		Short: "Launch background renders of a saved project",
		Long: `qrender starts renders of a saved project document. External renders
run a separate renderer process in the background with its output captured in
<output>/render_log.txt; internal renders run in the foreground and block until
they finish. The serve command exposes the same launcher over HTTP for host
add-ons, and publish uploads finished frames to S3-compatible storage.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := qconfig.Load(cfgFile)
			if err != nil {
				return err
			}

			logger := qlog.ForFlags(verbose, quiet)
			if used := cfg.ConfigFileUsed(); used != "" {
				logger.Debug("loaded config", "file", used)
			}

			ctx := context.WithValue(cmd.Context(), configContextKey, cfg)
			ctx = context.WithValue(ctx, loggerContextKey, logger)
			cmd.SetContext(ctx)

			return nil
		},
	}
)

// GetConfig retrieves the Config from the command context
func GetConfig(cmd *cobra.Command) (*qconfig.Config, error) {
	cfg, ok := cmd.Context().Value(configContextKey).(*qconfig.Config)
	if !ok {
		return nil, errors.New("no config in context")
	}
	return cfg, nil
}

// GetLogger retrieves the Logger from the command context
func GetLogger(cmd *cobra.Command) *qlog.Logger {
	if l, ok := cmd.Context().Value(loggerContextKey).(*qlog.Logger); ok {
		return l
	}
	return qlog.NewDefault()
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML). Searches: qrender.yaml, .qrender/config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
}

package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/app"
	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/util"
)

const configFlag = "config"

// NewSubcommandGroup returns a command that only groups subCmds and prints its
// help when run on its own.
func NewSubcommandGroup(name string, subCmds ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: name + " subcommands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subCmds...)

	return cmd
}

// LoadConfig reads the configuration file named by the --config flag.
func LoadConfig(cmd *cobra.Command) (config.Config, error) {
	path := config.DefaultConfigFile
	if flag := cmd.Flag(configFlag); flag != nil {
		path = flag.Value.String()
	}

	return config.Load(path)
}

// AddConfigFlag registers the persistent --config flag on the root command.
func AddConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(configFlag, config.DefaultConfigFile, "path to the TOML configuration file")
}

// WithApp configures logging, builds the App and runs f with a context
// carrying a fresh run id. The App is shut down when f returns.
func WithApp(ctx context.Context, cfg config.Config, f func(ctx context.Context, a *app.App) error) error {
	level, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", cfg.Logger.Level)
	}
	util.ConfigureLogger(level, cfg.Logger.PrettyPrintConsole)

	a, err := app.InitNewApp(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize app")
	}

	defer func() {
		if err := a.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("Failed to shutdown app gracefully")
		}
	}()

	a.StartMetrics()

	return f(util.WithRunID(ctx, uuid.NewString()), a)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/stormint/cmd/account"
	"github/chapool/stormint/cmd/cfg"
	"github/chapool/stormint/cmd/distribute"
	"github/chapool/stormint/cmd/mint"
	"github/chapool/stormint/cmd/query"
	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/util/command"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "stormint",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Derives EVM accounts from one seed phrase, funds them with a single
aggregated transfer and fires one contract call per account concurrently.
Configured through a TOML file and STORMINT_* environment variables.`, config.ModuleName),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	command.AddConfigFlag(rootCmd)

	// attach the subcommands
	rootCmd.AddCommand(
		account.New(),
		cfg.New(),
		distribute.New(),
		mint.New(),
		query.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}

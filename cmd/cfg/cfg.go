package cfg

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/util/command"
)

const (
	forceFlag = "force"
	redacted  = "<redacted>"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("config",
		newInit(),
		newShow(),
	)
}

func newInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values to the --config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := cmd.Flag("config").Value.String()
			force, _ := cmd.Flags().GetBool(forceFlag)

			if err := config.WriteFile(path, config.DefaultConfig(), force); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}

	cmd.Flags().Bool(forceFlag, false, "overwrite an existing file")

	return cmd
}

func newShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}

			if cfg.Account.Mnemonic != "" {
				cfg.Account.Mnemonic = redacted
			}
			if cfg.Account.Passphrase != "" {
				cfg.Account.Passphrase = redacted
			}
			if cfg.Account.KeystorePassword != "" {
				cfg.Account.KeystorePassword = redacted
			}
			if cfg.Distributor.SenderKey != "" {
				cfg.Distributor.SenderKey = redacted
			}

			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
}

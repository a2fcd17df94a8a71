package account

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/app"
	"github/chapool/stormint/internal/util/command"
)

func newList() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the addresses of the configured derivation range",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	command.AddRangeFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if err := command.ApplyRangeFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.ValidateAccounts(); err != nil {
		return err
	}

	return command.WithApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) error {
		mnemonic, err := a.Mnemonic(ctx)
		if err != nil {
			return err
		}

		identities, err := a.DeriveIdentities(mnemonic)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tPATH\tADDRESS")
		for _, identity := range identities {
			fmt.Fprintf(w, "%d\t%s\t%s\n", identity.Index(), identity.Path(), identity.Address().Hex())
		}
		return w.Flush()
	})
}

package distribute

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/app"
	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/util"
	"github/chapool/stormint/internal/util/command"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/distributor"
)

const amountFlag = "amount"

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Fund every derived account with one aggregated transfer",
		Long: `Sends one payable transaction from distributor.sender_key to the distributor
contract, paying distributor.amount ether to every account of the derivation range.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	cmd.Flags().String(amountFlag, "", "ether per account (overrides distributor.amount)")
	command.AddRangeFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if err := command.ApplyRangeFlags(cmd, &cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed(amountFlag) {
		cfg.Distributor.Amount, _ = cmd.Flags().GetString(amountFlag)
	}
	if err := cfg.ValidateDistribute(); err != nil {
		return err
	}

	return command.WithApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) error {
		sender, err := account.FromPrivateKeyHex(cfg.Distributor.SenderKey)
		if err != nil {
			return errors.Wrap(err, "invalid distributor.sender_key")
		}

		mnemonic, err := a.Mnemonic(ctx)
		if err != nil {
			return err
		}

		identities, err := a.DeriveIdentities(mnemonic)
		if err != nil {
			return err
		}

		contract, err := a.Contract(cfg.Distributor.Artifact, cfg.Distributor.Address)
		if err != nil {
			return err
		}

		amount, err := config.ParseEther(cfg.Distributor.Amount)
		if err != nil {
			return err
		}

		receivers := make([]common.Address, 0, len(identities))
		for _, identity := range identities {
			receivers = append(receivers, identity.Address())
		}

		util.LogFromContext(ctx).Info().
			Str("sender", sender.Address().Hex()).
			Int("receivers", len(receivers)).
			Str("amount_ether", cfg.Distributor.Amount).
			Msg("Distributing funds")

		txHash, err := a.Distributor.Distribute(ctx, sender, contract, distributor.Uniform(receivers, amount))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), txHash.Hex())
		return nil
	})
}

package mint

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/app"
	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/util/command"
	"github/chapool/stormint/internal/wallet/executor"
	walletmint "github/chapool/stormint/internal/wallet/mint"
)

const (
	functionFlag    = "function"
	argFlag         = "arg"
	valueFlag       = "value"
	concurrencyFlag = "concurrency"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Call the mint contract once from every derived account, concurrently",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	cmd.Flags().String(functionFlag, "", "contract function (overrides mint.function)")
	cmd.Flags().StringArray(argFlag, nil, "function argument, repeat in order (overrides mint.args)")
	cmd.Flags().String(valueFlag, "", "ether attached to every call (overrides mint.value)")
	cmd.Flags().Int(concurrencyFlag, 0, "max in-flight submissions, 0 for all (overrides mint.concurrency)")
	command.AddRangeFlags(cmd)

	return cmd
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if err := command.ApplyRangeFlags(cmd, cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed(functionFlag) {
		cfg.Mint.Function, _ = flags.GetString(functionFlag)
	}
	if flags.Changed(argFlag) {
		cfg.Mint.Args, _ = flags.GetStringArray(argFlag)
	}
	if flags.Changed(valueFlag) {
		cfg.Mint.Value, _ = flags.GetString(valueFlag)
	}
	if flags.Changed(concurrencyFlag) {
		cfg.Mint.Concurrency, _ = flags.GetInt(concurrencyFlag)
	}

	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.ValidateMint(); err != nil {
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

		contract, err := a.Contract(cfg.Mint.Artifact, cfg.Mint.Address)
		if err != nil {
			return err
		}

		function := cfg.Mint.Function
		if function == "" {
			function = walletmint.DefaultFunction
		}
		method, ok := contract.ABI.Methods[function]
		if !ok {
			return errors.Wrapf(executor.ErrInvalidFunction, "function %q not found in %s", function, cfg.Mint.Artifact)
		}

		args, err := executor.ParseArgs(method, cfg.Mint.Args)
		if err != nil {
			return err
		}

		value, err := config.ParseEther(cfg.Mint.Value)
		if err != nil {
			return err
		}

		outcomes, err := a.Minter.RunBatch(ctx, identities, walletmint.Request{
			Contract: contract,
			Function: function,
			Args:     args,
			Value:    value,
		})
		if err != nil {
			return err
		}

		return printOutcomes(cmd, outcomes)
	})
}

func printOutcomes(cmd *cobra.Command, outcomes []walletmint.Outcome) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tRESULT\tDETAIL\tELAPSED")

	for _, outcome := range outcomes {
		if outcome.OK() {
			fmt.Fprintf(w, "%s\tok\t%s\t%s\n", outcome.Actor.Hex(), outcome.TxHash.Hex(), outcome.Elapsed.Round(time.Millisecond))
			continue
		}
		fmt.Fprintf(w, "%s\tfailed\t%v\t%s\n", outcome.Actor.Hex(), outcome.Err, outcome.Elapsed.Round(time.Millisecond))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	summary := walletmint.Summarize(outcomes)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)

	if summary.Total > 0 && summary.Succeeded == 0 {
		return errors.New("all submissions failed")
	}
	return nil
}

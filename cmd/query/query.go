package query

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/app"
	"github/chapool/stormint/internal/util/command"
	"github/chapool/stormint/internal/wallet/executor"
)

const (
	artifactFlag = "artifact"
	addressFlag  = "address"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <function> [args...]",
		Short: "Call a read-only contract function",
		Long: `Evaluates a contract function against the latest state without sending a
transaction. The contract defaults to the one configured in the [mint] section.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}

	cmd.Flags().String(artifactFlag, "", "contract artifact (overrides mint.artifact)")
	cmd.Flags().String(addressFlag, "", "contract address (overrides mint.address)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(artifactFlag) {
		cfg.Mint.Artifact, _ = cmd.Flags().GetString(artifactFlag)
	}
	if cmd.Flags().Changed(addressFlag) {
		cfg.Mint.Address, _ = cmd.Flags().GetString(addressFlag)
	}
	if err := cfg.ValidateQuery(); err != nil {
		return err
	}

	function := args[0]

	return command.WithApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) error {
		contract, err := a.Contract(cfg.Mint.Artifact, cfg.Mint.Address)
		if err != nil {
			return err
		}

		method, ok := contract.ABI.Methods[function]
		if !ok {
			return errors.Wrapf(executor.ErrInvalidFunction, "function %q not found in %s", function, cfg.Mint.Artifact)
		}

		callArgs, err := executor.ParseArgs(method, args[1:])
		if err != nil {
			return err
		}

		values, err := a.Submitter.Query(ctx, contract, function, callArgs)
		if err != nil {
			return err
		}

		for _, value := range values {
			fmt.Fprintln(cmd.OutOrStdout(), format(value))
		}
		return nil
	})
}

func format(value any) string {
	switch v := value.(type) {
	case *big.Int:
		return v.String()
	case common.Address:
		return v.Hex()
	case []byte:
		return hexutil.Encode(v)
	default:
		return fmt.Sprint(v)
	}
}

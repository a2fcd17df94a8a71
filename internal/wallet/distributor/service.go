package distributor

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/stormint/internal/util"
	"github/chapool/stormint/internal/wallet/executor"
)

type service struct {
	submitter executor.Service
	function  string
}

// NewService creates an aggregator submitting through submitter.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(submitter executor.Service, opts Options) Service {
	function := opts.Function
	if function == "" {
		function = DefaultFunction
	}

	return &service{
		submitter: submitter,
		function:  function,
	}
}

func (s *service) Distribute(
	ctx context.Context,
	sender executor.Signer,
	contract executor.Contract,
	transfers []Transfer,
) (common.Hash, error) {
	if contract.ABI == nil {
		return common.Hash{}, &executor.SubmissionError{Kind: executor.ErrInvalidFunction, Reason: "contract ABI is missing"}
	}

	method, ok := contract.ABI.Methods[s.function]
	if !ok {
		return common.Hash{}, &executor.SubmissionError{
			Kind:   executor.ErrInvalidFunction,
			Reason: "function " + s.function + " not found in ABI",
		}
	}

	batch, err := NewBatch(method, transfers)
	if err != nil {
		return common.Hash{}, &executor.SubmissionError{Kind: executor.ErrArgumentMismatch, Err: err}
	}

	log := util.LogFromContext(ctx)
	log.Debug().
		Str("function", s.function).
		Int("transfers", batch.Len).
		Str("total_wei", batch.TotalValue.String()).
		Msg("Submitting aggregated transfers")

	txHash, err := s.submitter.Submit(ctx, sender, contract, s.function, batch.Args(), batch.TotalValue)
	if err != nil {
		return common.Hash{}, errors.WithMessagef(err, "failed to distribute to %d receivers", batch.Len)
	}

	log.Info().
		Str("tx_hash", txHash.Hex()).
		Int("transfers", batch.Len).
		Str("total_wei", batch.TotalValue.String()).
		Msg("Distributed funds")

	return txHash, nil
}

// Uniform pays the same amount to every receiver.
func Uniform(receivers []common.Address, amount *big.Int) []Transfer {
	transfers := make([]Transfer, 0, len(receivers))
	for _, receiver := range receivers {
		transfers = append(transfers, Transfer{
			Receiver: receiver,
			Amount:   new(big.Int).Set(amount),
		})
	}
	return transfers
}

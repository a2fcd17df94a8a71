package executor

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/stormint/internal/util"
	"github/chapool/stormint/internal/wallet/signer"
)

const (
	defaultPollInterval      = 3 * time.Second
	defaultEIP1559Multiplier = 2
)

type service struct {
	dial DialFunc
	opts Options
}

// NewService creates a submitter resolving endpoints through dial.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(dial DialFunc, opts Options) Service {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	return &service{
		dial: dial,
		opts: opts,
	}
}

func (s *service) Submit(
	ctx context.Context,
	sender Signer,
	contract Contract,
	function string,
	args []any,
	value *big.Int,
) (common.Hash, error) {
	if sender == nil {
		return common.Hash{}, &SubmissionError{Kind: ErrArgumentMismatch, Reason: "sender is required"}
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	data, err := Encode(contract.ABI, function, args)
	if err != nil {
		return common.Hash{}, newSubmissionError(err, common.Hash{})
	}

	if value == nil {
		value = big.NewInt(0)
	}
	if value.Sign() < 0 {
		return common.Hash{}, &SubmissionError{Kind: ErrArgumentMismatch, Reason: "value must not be negative"}
	}

	backend, err := s.dial(ctx, contract.Endpoint)
	if err != nil {
		return common.Hash{}, newSubmissionError(errors.Wrap(err, "failed to dial endpoint"), common.Hash{})
	}

	log := util.LogFromContext(ctx).With().
		Str("from", sender.Address().Hex()).
		Str("contract", contract.Address.Hex()).
		Str("function", function).
		Logger()

	tx, err := s.sendTransaction(ctx, backend, sender, contract.Address, data, value)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to broadcast transaction")
		return common.Hash{}, newSubmissionError(err, common.Hash{})
	}

	txHash := tx.Hash()
	log.Debug().
		Str("tx_hash", txHash.Hex()).
		Uint64("nonce", tx.Nonce()).
		Uint64("gas_limit", tx.Gas()).
		Str("value_wei", value.String()).
		Msg("Transaction broadcast, waiting for receipt")

	receipt, err := s.waitForReceipt(ctx, backend, txHash)
	if err != nil {
		return common.Hash{}, newSubmissionError(err, txHash)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		log.Debug().Str("tx_hash", txHash.Hex()).Msg("Transaction reverted")
		return common.Hash{}, &SubmissionError{Kind: ErrReverted, TxHash: txHash, Reason: "transaction mined with failed status"}
	}

	log.Debug().
		Str("tx_hash", txHash.Hex()).
		Uint64("gas_used", receipt.GasUsed).
		Msg("Transaction confirmed")

	return txHash, nil
}

func (s *service) sendTransaction(
	ctx context.Context,
	backend Backend,
	sender Signer,
	to common.Address,
	data []byte,
	value *big.Int,
) (*types.Transaction, error) {
	from := sender.Address()

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain ID")
	}

	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pending nonce")
	}

	gasLimit, err := backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to estimate gas")
	}

	tipCap, err := backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	latestHeader, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest block header")
	}

	baseFee := latestHeader.BaseFee
	if baseFee == nil {
		baseFee = big.NewInt(0)
	}

	maxFeePerGas := new(big.Int).Add(
		new(big.Int).Mul(baseFee, big.NewInt(defaultEIP1559Multiplier)),
		tipCap,
	)

	signed, err := sender.Sign(&signer.SignEVMRequest{
		ChainID:              chainID,
		To:                   to,
		Value:                value,
		GasLimit:             gasLimit,
		MaxFeePerGas:         maxFeePerGas,
		MaxPriorityFeePerGas: tipCap,
		Nonce:                nonce,
		Data:                 data,
		FromAddress:          from,
	})
	if err != nil {
		return nil, &SubmissionError{Kind: ErrArgumentMismatch, Reason: "failed to sign transaction", Err: err}
	}

	if err := backend.SendTransaction(ctx, signed.Transaction); err != nil {
		return nil, errors.Wrap(err, "failed to send transaction")
	}

	return signed.Transaction, nil
}

// waitForReceipt polls until the transaction is mined or ctx ends.
func (s *service) waitForReceipt(ctx context.Context, backend Backend, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := backend.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}

		if !errors.Is(err, ethereum.NotFound) {
			return nil, errors.Wrap(err, "failed to get transaction receipt")
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "context done while waiting for receipt")
		case <-ticker.C:
			continue
		}
	}
}

func (s *service) Query(ctx context.Context, contract Contract, function string, args []any) ([]any, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	data, err := Encode(contract.ABI, function, args)
	if err != nil {
		return nil, newQueryError(err)
	}

	backend, err := s.dial(ctx, contract.Endpoint)
	if err != nil {
		return nil, newQueryError(errors.Wrap(err, "failed to dial endpoint"))
	}

	out, err := backend.CallContract(ctx, ethereum.CallMsg{
		To:   &contract.Address,
		Data: data,
	}, nil)
	if err != nil {
		return nil, newQueryError(err)
	}

	values, err := contract.ABI.Unpack(function, out)
	if err != nil {
		return nil, &QueryError{Kind: ErrArgumentMismatch, Reason: "failed to decode return data", Err: err}
	}

	return values, nil
}

func newSubmissionError(err error, txHash common.Hash) error {
	var subErr *SubmissionError
	if errors.As(err, &subErr) {
		if subErr.TxHash == (common.Hash{}) {
			subErr.TxHash = txHash
		}
		return subErr
	}

	f := classify(err)
	return &SubmissionError{Kind: f.kind, TxHash: txHash, Reason: f.reason, Err: err}
}

func newQueryError(err error) error {
	f := classify(err)
	return &QueryError{Kind: f.kind, Reason: f.reason, Err: err}
}

package executor

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github/chapool/stormint/internal/wallet/signer"
)

// Backend is the subset of an Ethereum JSON-RPC client used to submit and query
// contract calls. *rpc.Client and *ethclient.Client both satisfy it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// DialFunc resolves an endpoint string to a Backend.
type DialFunc func(ctx context.Context, endpoint string) (Backend, error)

// Contract addresses one deployed contract. It is passed by value and the ABI is
// only read, so one Contract may be shared by any number of goroutines.
type Contract struct {
	Endpoint string
	ABI      *abi.ABI
	Address  common.Address
}

// Signer signs transactions for a single sender address.
type Signer interface {
	Address() common.Address
	Sign(req *signer.SignEVMRequest) (*signer.SignEVMResponse, error)
}

// Options tunes the submitter.
type Options struct {
	// Timeout bounds one submission from encoding to receipt. 0 waits indefinitely.
	Timeout time.Duration
	// PollInterval is the delay between receipt polls, 3s if unset.
	PollInterval time.Duration
}

// Service submits state-changing contract calls and performs read-only queries.
type Service interface {
	// Submit signs and broadcasts function(args...) from sender with value attached
	// and blocks until the transaction is mined. It returns the hash of a
	// transaction that executed successfully.
	Submit(
		ctx context.Context,
		sender Signer,
		contract Contract,
		function string,
		args []any,
		value *big.Int,
	) (common.Hash, error)

	// Query evaluates function(args...) against the latest state without creating
	// a transaction and returns the decoded outputs.
	Query(ctx context.Context, contract Contract, function string, args []any) ([]any, error)
}

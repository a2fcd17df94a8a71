package test

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/stormint/internal/wallet/executor"
)

// LedgerEndpoint is the endpoint string served by Ledger.Dial.
const LedgerEndpoint = "memory://ledger"

// LedgerChainID is the chain id reported by the in-memory ledger.
const LedgerChainID = 31337

const ledgerGasLimit = 100_000

var (
	ledgerBaseFee = big.NewInt(1_000_000_000)
	ledgerTipCap  = big.NewInt(1_500_000_000)
)

// Ledger is an in-memory executor.Backend. Transactions are mined when first
// polled for a receipt after one "not found" answer, so every submission
// exercises the receipt polling loop. Behavior is configurable per sender.
type Ledger struct {
	signer types.Signer

	mu          sync.Mutex
	nonces      map[common.Address]uint64
	balances    map[common.Address]*big.Int
	reverts     map[common.Address]string
	failOnChain map[common.Address]bool
	unreachable map[common.Address]bool
	stalled     map[common.Address]bool
	delays      map[common.Address]time.Duration
	sent        []*types.Transaction
	senders     map[common.Hash]common.Address
	receipts    map[common.Hash]*types.Receipt
	polls       map[common.Hash]int
	completed   []common.Address
	onCall      func(msg ethereum.CallMsg) ([]byte, error)
	dials       int
}

// WithTestLedger runs closure with a fresh ledger.
func WithTestLedger(t *testing.T, closure func(l *Ledger)) {
	t.Helper()
	closure(NewTestLedger(t))
}

func NewTestLedger(t *testing.T) *Ledger {
	t.Helper()

	return &Ledger{
		signer:      types.LatestSignerForChainID(big.NewInt(LedgerChainID)),
		nonces:      map[common.Address]uint64{},
		balances:    map[common.Address]*big.Int{},
		reverts:     map[common.Address]string{},
		failOnChain: map[common.Address]bool{},
		unreachable: map[common.Address]bool{},
		stalled:     map[common.Address]bool{},
		delays:      map[common.Address]time.Duration{},
		senders:     map[common.Hash]common.Address{},
		receipts:    map[common.Hash]*types.Receipt{},
		polls:       map[common.Hash]int{},
	}
}

// Dial satisfies executor.DialFunc.
//
//nolint:ireturn // Backend is the dial contract
func (l *Ledger) Dial(_ context.Context, endpoint string) (executor.Backend, error) {
	if endpoint == "" {
		return nil, errors.New("no endpoint")
	}

	l.mu.Lock()
	l.dials++
	l.mu.Unlock()

	return l, nil
}

// SetBalance enables balance checks for addr.
func (l *Ledger) SetBalance(addr common.Address, wei *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[addr] = new(big.Int).Set(wei)
}

// RevertFor makes gas estimation of every call from addr revert with reason.
func (l *Ledger) RevertFor(addr common.Address, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reverts[addr] = reason
}

// FailOnChainFor mines transactions from addr with status 0.
func (l *Ledger) FailOnChainFor(addr common.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failOnChain[addr] = true
}

// UnreachableFor makes broadcasts from addr fail on transport level.
func (l *Ledger) UnreachableFor(addr common.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unreachable[addr] = true
}

// StallFor never mines transactions from addr.
func (l *Ledger) StallFor(addr common.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stalled[addr] = true
}

// DelayFor holds broadcasts from addr for d.
func (l *Ledger) DelayFor(addr common.Address, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.delays[addr] = d
}

// HandleCalls installs the eth_call handler.
func (l *Ledger) HandleCalls(fn func(msg ethereum.CallMsg) ([]byte, error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onCall = fn
}

// Sent returns all broadcast transactions in broadcast order.
func (l *Ledger) Sent() []*types.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*types.Transaction(nil), l.sent...)
}

// SenderOf returns the recovered sender of a broadcast transaction.
func (l *Ledger) SenderOf(txHash common.Hash) common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.senders[txHash]
}

// Completed returns the senders of mined transactions in mining order.
func (l *Ledger) Completed() []common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]common.Address(nil), l.completed...)
}

// Dials returns how often Dial was called.
func (l *Ledger) Dials() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dials
}

func (l *Ledger) ChainID(_ context.Context) (*big.Int, error) {
	return big.NewInt(LedgerChainID), nil
}

func (l *Ledger) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nonces[account], nil
}

func (l *Ledger) SuggestGasTipCap(_ context.Context) (*big.Int, error) {
	return new(big.Int).Set(ledgerTipCap), nil
}

func (l *Ledger) HeaderByNumber(_ context.Context, _ *big.Int) (*types.Header, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return &types.Header{
		Number:  big.NewInt(int64(len(l.completed))),
		BaseFee: new(big.Int).Set(ledgerBaseFee),
	}, nil
}

func (l *Ledger) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if reason, ok := l.reverts[msg.From]; ok {
		return 0, NewRevertError(reason)
	}

	if balance, ok := l.balances[msg.From]; ok && msg.Value != nil && msg.Value.Cmp(balance) > 0 {
		return 0, errors.Errorf("insufficient funds for transfer: address %s have %s want %s",
			msg.From.Hex(), balance, msg.Value)
	}

	return ledgerGasLimit, nil
}

func (l *Ledger) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	from, err := types.Sender(l.signer, tx)
	if err != nil {
		return newRPCError(-32000, "invalid sender: "+err.Error())
	}

	l.mu.Lock()
	delay := l.delays[from]
	unreachable := l.unreachable[from]
	l.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	if unreachable {
		return errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if tx.Nonce() != l.nonces[from] {
		return newRPCError(-32000, "nonce too low")
	}
	l.nonces[from]++

	status := types.ReceiptStatusSuccessful
	if l.failOnChain[from] {
		status = types.ReceiptStatusFailed
	}

	l.sent = append(l.sent, tx)
	l.senders[tx.Hash()] = from
	if !l.stalled[from] {
		l.receipts[tx.Hash()] = &types.Receipt{
			Type:    tx.Type(),
			Status:  status,
			TxHash:  tx.Hash(),
			GasUsed: tx.Gas(),
		}
	}

	return nil
}

func (l *Ledger) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	receipt, ok := l.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}

	l.polls[txHash]++
	if l.polls[txHash] == 1 {
		return nil, ethereum.NotFound
	}

	if receipt.BlockNumber == nil {
		l.completed = append(l.completed, l.senders[txHash])
		receipt.BlockNumber = big.NewInt(int64(len(l.completed)))
	}

	return receipt, nil
}

func (l *Ledger) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	l.mu.Lock()
	onCall := l.onCall
	l.mu.Unlock()

	if onCall == nil {
		return nil, nil
	}
	return onCall(msg)
}

type rpcError struct {
	code    int
	message string
	data    any
}

func (e *rpcError) Error() string  { return e.message }
func (e *rpcError) ErrorCode() int { return e.code }
func (e *rpcError) ErrorData() any { return e.data }

func newRPCError(code int, message string) error {
	return &rpcError{code: code, message: message}
}

// RevertData returns the Error(string) revert payload for reason.
func RevertData(reason string) []byte {
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(err)
	}

	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	if err != nil {
		panic(err)
	}

	// Error(string)
	return append(common.FromHex("0x08c379a0"), packed...)
}

// NewRevertError returns the JSON-RPC error a node answers with for a reverted call.
func NewRevertError(reason string) error {
	return &rpcError{
		code:    3,
		message: "execution reverted: " + reason,
		data:    hexutil.Encode(RevertData(reason)),
	}
}

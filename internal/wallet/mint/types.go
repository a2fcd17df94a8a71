package mint

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/executor"
)

// DefaultFunction is called when a Request names no function.
const DefaultFunction = "mint"

// ErrInvalidSetup is returned before any submission when a Request cannot work
// for any identity.
var ErrInvalidSetup = errors.New("invalid mint setup")

// SetupError explains an ErrInvalidSetup.
type SetupError struct {
	Reason string
	Err    error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidSetup, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSetup, e.Reason)
}

func (e *SetupError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidSetup}
	}
	return []error{ErrInvalidSetup, e.Err}
}

// Request is the call every identity submits.
type Request struct {
	Contract executor.Contract
	// Function defaults to "mint".
	Function string
	// Args are shared by all identities and must not be modified during a run.
	Args []any
	// Value in wei attached to every call, 0 if nil.
	Value *big.Int
}

// Outcome is the result of one identity's submission.
type Outcome struct {
	Actor   common.Address
	TxHash  common.Hash
	Err     error
	Elapsed time.Duration
}

// OK reports whether the submission was mined successfully.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Observer is notified once per finished submission, in completion order.
// Implementations must be safe for concurrent use.
type Observer interface {
	OutcomeRecorded(outcome Outcome)
}

// Options configures the executor.
type Options struct {
	// MaxConcurrency bounds in-flight submissions. 0 submits for all identities at once.
	MaxConcurrency int
	Observer       Observer
}

// Service runs one contract call per identity concurrently.
type Service interface {
	// RunBatch submits req once per identity and returns one outcome per
	// identity in input order. Per-identity failures are recorded in the
	// outcomes; the returned error is reserved for invalid setups.
	RunBatch(ctx context.Context, identities []*account.Identity, req Request) ([]Outcome, error)
}

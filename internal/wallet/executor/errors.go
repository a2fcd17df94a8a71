package executor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Error kinds. Match them with errors.Is on any error returned by Submit or Query.
var (
	ErrInvalidFunction   = errors.New("invalid function")
	ErrArgumentMismatch  = errors.New("argument mismatch")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrReverted          = errors.New("execution reverted")
	ErrNetworkFailure    = errors.New("network failure")
	ErrTimeout           = errors.New("submission timed out")
)

// SubmissionError describes a failed Submit. TxHash is set once the
// transaction was broadcast.
type SubmissionError struct {
	Kind   error
	TxHash common.Hash
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	msg := e.Kind.Error()
	if e.TxHash != (common.Hash{}) {
		msg = fmt.Sprintf("%s (tx %s)", msg, e.TxHash.Hex())
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil && e.Reason == "" {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SubmissionError) Unwrap() []error {
	return compact(e.Kind, e.Err)
}

// QueryError describes a failed Query.
type QueryError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *QueryError) Error() string {
	msg := e.Kind.Error()
	if e.Reason != "" {
		return msg + ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *QueryError) Unwrap() []error {
	return compact(e.Kind, e.Err)
}

func compact(errs ...error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// TxHashOf returns the transaction hash carried by err, if any.
func TxHashOf(err error) (common.Hash, bool) {
	var subErr *SubmissionError
	if errors.As(err, &subErr) && subErr.TxHash != (common.Hash{}) {
		return subErr.TxHash, true
	}
	return common.Hash{}, false
}

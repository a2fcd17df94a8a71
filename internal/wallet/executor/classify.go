package executor

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

var kinds = []error{
	ErrInvalidFunction,
	ErrArgumentMismatch,
	ErrInsufficientFunds,
	ErrReverted,
	ErrNetworkFailure,
	ErrTimeout,
}

type failure struct {
	kind   error
	reason string
}

// classify maps a node or encoding error to one of the error kinds and, for
// reverts, the decoded revert reason.
func classify(err error) failure {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return failure{kind: kind}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return failure{kind: ErrTimeout}
	}

	var dataErr gethrpc.DataError
	if errors.As(err, &dataErr) {
		if reason, ok := revertReason(dataErr.ErrorData()); ok {
			return failure{kind: ErrReverted, reason: reason}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return failure{kind: ErrInsufficientFunds}
	case strings.Contains(msg, "revert"):
		return failure{kind: ErrReverted}
	default:
		return failure{kind: ErrNetworkFailure}
	}
}

// revertReason decodes Error(string) revert data. Custom errors and panics
// yield the raw data as reason.
func revertReason(data any) (string, bool) {
	hexData, ok := data.(string)
	if !ok || hexData == "" {
		return "", false
	}

	raw, err := hexutil.Decode(hexData)
	if err != nil {
		return "", false
	}

	if reason, err := abi.UnpackRevert(raw); err == nil {
		return reason, true
	}
	return hexData, true
}

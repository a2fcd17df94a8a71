package mint

import (
	"github.com/pkg/errors"
	"github/chapool/stormint/internal/wallet/executor"
)

// Summary counts outcomes of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	// ByKind counts failures per executor error kind.
	ByKind map[string]int
}

var outcomeKinds = []error{
	executor.ErrInvalidFunction,
	executor.ErrArgumentMismatch,
	executor.ErrInsufficientFunds,
	executor.ErrReverted,
	executor.ErrNetworkFailure,
	executor.ErrTimeout,
}

// Summarize counts successes and failures.
func Summarize(outcomes []Outcome) Summary {
	summary := Summary{
		Total:  len(outcomes),
		ByKind: map[string]int{},
	}

	for _, outcome := range outcomes {
		if outcome.OK() {
			summary.Succeeded++
			continue
		}

		summary.Failed++
		summary.ByKind[KindOf(outcome.Err)]++
	}

	return summary
}

// KindOf names the executor error kind of err, "unknown" if none matches.
func KindOf(err error) string {
	for _, kind := range outcomeKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "unknown"
}

package distributor

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github/chapool/stormint/internal/wallet/executor"
)

// DefaultFunction is the aggregation function of the bundled Distributor contract.
const DefaultFunction = "distributeEther"

// Transfer pays Amount wei to Receiver.
type Transfer struct {
	Receiver common.Address
	Amount   *big.Int
}

// Options configures the aggregator.
type Options struct {
	// Function is the payable contract function taking the transfer list.
	Function string
}

// Service aggregates many transfers into one payable contract call.
type Service interface {
	// Distribute submits all transfers in a single transaction whose value is
	// the sum of their amounts. An empty list still submits.
	Distribute(
		ctx context.Context,
		sender executor.Signer,
		contract executor.Contract,
		transfers []Transfer,
	) (common.Hash, error)
}

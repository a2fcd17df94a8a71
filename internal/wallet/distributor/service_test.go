package distributor_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/stormint/internal/test"
	"github/chapool/stormint/internal/wallet/distributor"
	"github/chapool/stormint/internal/wallet/executor"
)

type transaction struct {
	Receiver common.Address
	Amount   *big.Int
}

func newDistributor(t *testing.T, ledger *test.Ledger) (distributor.Service, executor.Contract) {
	t.Helper()

	submitter := executor.NewService(ledger.Dial, executor.Options{PollInterval: 5 * time.Millisecond})
	contract := executor.Contract{
		Endpoint: test.LedgerEndpoint,
		ABI:      test.MustParseABI(t, test.DistributorABI),
		Address:  test.DistributorAddress,
	}

	return distributor.NewService(submitter, distributor.Options{}), contract
}

func TestDistributeAggregatesIntoOneTransaction(t *testing.T) {
	test.WithTestLedger(t, func(ledger *test.Ledger) {
		svc, contract := newDistributor(t, ledger)
		sender := test.NewTestSender(t)
		receivers := test.NewTestIdentities(t, 2)

		txHash, err := svc.Distribute(t.Context(), sender, contract, []distributor.Transfer{
			{Receiver: receivers[0].Address(), Amount: big.NewInt(1000)},
			{Receiver: receivers[1].Address(), Amount: big.NewInt(2000)},
		})
		require.NoError(t, err)

		sent := ledger.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, sent[0].Hash(), txHash)
		assert.Equal(t, int64(3000), sent[0].Value().Int64())
		assert.Equal(t, sender.Address(), ledger.SenderOf(txHash))

		expected, err := contract.ABI.Pack("distributeEther", []transaction{
			{Receiver: receivers[0].Address(), Amount: big.NewInt(1000)},
			{Receiver: receivers[1].Address(), Amount: big.NewInt(2000)},
		})
		require.NoError(t, err)
		assert.Equal(t, expected, sent[0].Data())
	})
}

func TestDistributeEmptyBatchStillSubmits(t *testing.T) {
	test.WithTestLedger(t, func(ledger *test.Ledger) {
		svc, contract := newDistributor(t, ledger)

		_, err := svc.Distribute(t.Context(), test.NewTestSender(t), contract, nil)
		require.NoError(t, err)

		sent := ledger.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, int64(0), sent[0].Value().Int64())

		expected, err := contract.ABI.Pack("distributeEther", []transaction{})
		require.NoError(t, err)
		assert.Equal(t, expected, sent[0].Data())
	})
}

func TestDistributeRejectsOverflow(t *testing.T) {
	test.WithTestLedger(t, func(ledger *test.Ledger) {
		svc, contract := newDistributor(t, ledger)
		maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
		receiver := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

		_, err := svc.Distribute(t.Context(), test.NewTestSender(t), contract, []distributor.Transfer{
			{Receiver: receiver, Amount: maxUint256},
			{Receiver: receiver, Amount: big.NewInt(1)},
		})
		require.ErrorIs(t, err, executor.ErrArgumentMismatch)
		assert.Empty(t, ledger.Sent())
	})
}

func TestDistributeRejectsInvalidAmounts(t *testing.T) {
	test.WithTestLedger(t, func(ledger *test.Ledger) {
		svc, contract := newDistributor(t, ledger)
		receiver := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

		for _, amount := range []*big.Int{nil, big.NewInt(-5)} {
			_, err := svc.Distribute(t.Context(), test.NewTestSender(t), contract, []distributor.Transfer{
				{Receiver: receiver, Amount: amount},
			})
			require.ErrorIs(t, err, executor.ErrArgumentMismatch)
		}
		assert.Empty(t, ledger.Sent())
	})
}

func TestDistributeSurfacesSubmitterErrors(t *testing.T) {
	test.WithTestLedger(t, func(ledger *test.Ledger) {
		svc, contract := newDistributor(t, ledger)
		sender := test.NewTestSender(t)
		ledger.SetBalance(sender.Address(), big.NewInt(2999))
		receivers := test.NewTestIdentities(t, 2)

		_, err := svc.Distribute(t.Context(), sender, contract, []distributor.Transfer{
			{Receiver: receivers[0].Address(), Amount: big.NewInt(1000)},
			{Receiver: receivers[1].Address(), Amount: big.NewInt(2000)},
		})
		require.ErrorIs(t, err, executor.ErrInsufficientFunds)

		var subErr *executor.SubmissionError
		require.ErrorAs(t, err, &subErr)
	})
}

func TestDistributeUnknownFunction(t *testing.T) {
	test.WithTestLedger(t, func(ledger *test.Ledger) {
		submitter := executor.NewService(ledger.Dial, executor.Options{PollInterval: 5 * time.Millisecond})
		svc := distributor.NewService(submitter, distributor.Options{Function: "airdrop"})
		contract := executor.Contract{
			Endpoint: test.LedgerEndpoint,
			ABI:      test.MustParseABI(t, test.DistributorABI),
			Address:  test.DistributorAddress,
		}

		_, err := svc.Distribute(t.Context(), test.NewTestSender(t), contract, nil)
		require.ErrorIs(t, err, executor.ErrInvalidFunction)
		assert.Empty(t, ledger.Sent())
	})
}

func TestDistributeReadsTupleLayoutFromABI(t *testing.T) {
	const airdropABI = `[{
		"type": "function",
		"name": "airdrop",
		"stateMutability": "payable",
		"inputs": [{
			"name": "drops",
			"type": "tuple[]",
			"components": [
				{"name": "value", "type": "uint256"},
				{"name": "to", "type": "address"}
			]
		}],
		"outputs": []
	}]`

	type drop struct {
		Value *big.Int
		To    common.Address
	}

	test.WithTestLedger(t, func(ledger *test.Ledger) {
		submitter := executor.NewService(ledger.Dial, executor.Options{PollInterval: 5 * time.Millisecond})
		svc := distributor.NewService(submitter, distributor.Options{Function: "airdrop"})
		contract := executor.Contract{
			Endpoint: test.LedgerEndpoint,
			ABI:      test.MustParseABI(t, airdropABI),
			Address:  test.DistributorAddress,
		}
		receiver := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

		_, err := svc.Distribute(t.Context(), test.NewTestSender(t), contract, []distributor.Transfer{
			{Receiver: receiver, Amount: big.NewInt(7)},
		})
		require.NoError(t, err)

		expected, err := contract.ABI.Pack("airdrop", []drop{{Value: big.NewInt(7), To: receiver}})
		require.NoError(t, err)

		sent := ledger.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, expected, sent[0].Data())
		assert.Equal(t, int64(7), sent[0].Value().Int64())
	})
}

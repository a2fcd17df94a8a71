package distributor_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/stormint/internal/test"
	"github/chapool/stormint/internal/wallet/distributor"
	"github/chapool/stormint/internal/wallet/executor"
)

func TestNewBatchTotal(t *testing.T) {
	method := test.MustParseABI(t, test.DistributorABI).Methods["distributeEther"]
	receivers := test.NewTestIdentities(t, 3)

	amounts := []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(1_000_000_000_000_000_000)}
	transfers := make([]distributor.Transfer, 0, len(receivers))
	for i, receiver := range receivers {
		transfers = append(transfers, distributor.Transfer{Receiver: receiver.Address(), Amount: amounts[i]})
	}

	batch, err := distributor.NewBatch(method, transfers)
	require.NoError(t, err)
	assert.Equal(t, 3, batch.Len)
	assert.Equal(t, "1000000000000000001", batch.TotalValue.String())
	require.Len(t, batch.Args(), 1)

	// later changes to the caller's amounts do not leak into the batch
	amounts[1].SetInt64(99)
	packed, err := method.Inputs.Pack(batch.Args()...)
	require.NoError(t, err)

	expected, err := method.Inputs.Pack([]transaction{
		{Receiver: receivers[0].Address(), Amount: big.NewInt(0)},
		{Receiver: receivers[1].Address(), Amount: big.NewInt(1)},
		{Receiver: receivers[2].Address(), Amount: big.NewInt(1_000_000_000_000_000_000)},
	})
	require.NoError(t, err)
	assert.Equal(t, expected, packed)
}

func TestNewBatchRejectsWrongShape(t *testing.T) {
	const wrongABI = `[
		{"type": "function", "name": "single", "inputs": [{"name": "to", "type": "address"}], "outputs": []},
		{"type": "function", "name": "two", "inputs": [
			{"name": "to", "type": "address[]"}, {"name": "amounts", "type": "uint256[]"}
		], "outputs": []},
		{"type": "function", "name": "narrow", "inputs": [{"name": "list", "type": "tuple[]", "components": [
			{"name": "to", "type": "address"}, {"name": "amount", "type": "uint64"}
		]}], "outputs": []},
		{"type": "function", "name": "triple", "inputs": [{"name": "list", "type": "tuple[]", "components": [
			{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}, {"name": "memo", "type": "string"}
		]}], "outputs": []}
	]`
	parsed := test.MustParseABI(t, wrongABI)
	transfers := distributor.Uniform([]common.Address{{1}}, big.NewInt(1))

	for name, method := range parsed.Methods {
		_, err := distributor.NewBatch(method, transfers)
		require.ErrorIs(t, err, executor.ErrArgumentMismatch, name)
	}
}

func TestUniform(t *testing.T) {
	amount := big.NewInt(5)
	transfers := distributor.Uniform([]common.Address{{1}, {2}}, amount)
	require.Len(t, transfers, 2)

	amount.SetInt64(6)
	for _, transfer := range transfers {
		assert.Equal(t, int64(5), transfer.Amount.Int64())
	}
	assert.Empty(t, distributor.Uniform(nil, amount))
}

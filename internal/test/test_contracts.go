package test

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/address"
)

// DevMnemonic is the well known development phrase used by local test nodes.
//
//nolint:dupword
const DevMnemonic = "test test test test test test test test test test test junk"

// DevPrivateKey controls the first account of DevMnemonic.
const DevPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var (
	DistributorAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	FreeMintAddress    = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
)

const DistributorABI = `[
	{
		"type": "function",
		"name": "distributeEther",
		"stateMutability": "payable",
		"inputs": [
			{
				"name": "transactions",
				"type": "tuple[]",
				"internalType": "struct Distributor.Transaction[]",
				"components": [
					{"name": "receiver", "type": "address", "internalType": "address payable"},
					{"name": "amount", "type": "uint256", "internalType": "uint256"}
				]
			}
		],
		"outputs": []
	},
	{
		"type": "error",
		"name": "TransferFailed",
		"inputs": [{"name": "receiver", "type": "address", "internalType": "address"}]
	}
]`

const FreeMintABI = `[
	{
		"type": "function",
		"name": "mint",
		"stateMutability": "nonpayable",
		"inputs": [],
		"outputs": []
	},
	{
		"type": "function",
		"name": "mintFor",
		"stateMutability": "payable",
		"inputs": [
			{"name": "to", "type": "address", "internalType": "address"},
			{"name": "quantity", "type": "uint8", "internalType": "uint8"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "MINT_AMOUNT",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256", "internalType": "uint256"}]
	},
	{
		"type": "function",
		"name": "balanceOf",
		"stateMutability": "view",
		"inputs": [{"name": "account", "type": "address", "internalType": "address"}],
		"outputs": [{"name": "", "type": "uint256", "internalType": "uint256"}]
	}
]`

// MustParseABI parses a JSON ABI definition.
func MustParseABI(t testing.TB, definition string) *abi.ABI {
	t.Helper()

	parsed, err := abi.JSON(strings.NewReader(definition))
	require.NoError(t, err)

	return &parsed
}

// NewTestIdentities derives n identities from DevMnemonic starting at index 1.
func NewTestIdentities(t testing.TB, n int) []*account.Identity {
	t.Helper()

	deriver := account.NewDeriver(address.NewService(), account.Options{})
	identities, err := deriver.Derive(DevMnemonic, account.Range{Start: 1, End: uint32(1 + n)})
	require.NoError(t, err)

	return identities
}

// NewTestSender returns the identity for DevPrivateKey.
func NewTestSender(t testing.TB) *account.Identity {
	t.Helper()

	sender, err := account.FromPrivateKeyHex(DevPrivateKey)
	require.NoError(t, err)

	return sender
}

package signer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SignEVMRequest represents a request to sign an EVM transaction
type SignEVMRequest struct {
	ChainID              *big.Int       // Chain ID (1 for Ethereum mainnet, 31337 for a local node, etc.)
	To                   common.Address // Recipient or contract address
	Value                *big.Int       // Amount in wei, nil means zero
	GasLimit             uint64         // Gas limit
	MaxFeePerGas         *big.Int       // Max fee per gas (EIP-1559, in wei)
	MaxPriorityFeePerGas *big.Int       // Max priority fee per gas (EIP-1559, in wei)
	Nonce                uint64         // Transaction nonce
	Data                 []byte         // Transaction data (for contract calls)
	FromAddress          common.Address // Address to sign from
}

// SignEVMResponse represents a signed EVM transaction
type SignEVMResponse struct {
	Transaction    *types.Transaction // Signed transaction, ready for eth_sendRawTransaction
	RawTransaction []byte             // RLP-encoded signed transaction
	TxHash         common.Hash        // Transaction hash
}

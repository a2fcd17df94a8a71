package signer

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// SignEIP1559Transaction signs an EIP-1559 transaction with the given key.
// The key must belong to req.FromAddress.
func SignEIP1559Transaction(req *SignEVMRequest, privateKey *ecdsa.PrivateKey) (*SignEVMResponse, error) {
	if req == nil {
		return nil, errors.New("sign request is nil")
	}
	if privateKey == nil {
		return nil, errors.New("private key is nil")
	}
	if req.ChainID == nil || req.ChainID.Sign() <= 0 {
		return nil, errors.New("invalid chain ID")
	}
	if req.MaxFeePerGas == nil || req.MaxPriorityFeePerGas == nil {
		return nil, errors.New("fee caps are required")
	}

	derivedAddress := crypto.PubkeyToAddress(privateKey.PublicKey)
	if derivedAddress != req.FromAddress {
		return nil, errors.New("from address does not match private key")
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return nil, errors.New("invalid value: negative amount")
	}

	to := req.To
	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   new(big.Int).Set(req.ChainID),
		Nonce:     req.Nonce,
		GasTipCap: new(big.Int).Set(req.MaxPriorityFeePerGas),
		GasFeeCap: new(big.Int).Set(req.MaxFeePerGas),
		Gas:       req.GasLimit,
		To:        &to,
		Value:     new(big.Int).Set(value),
		Data:      req.Data,
	})

	signedTx, err := types.SignTx(tx, types.NewLondonSigner(req.ChainID), privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	txBytes, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction")
	}

	return &SignEVMResponse{
		Transaction:    signedTx,
		RawTransaction: txBytes,
		TxHash:         signedTx.Hash(),
	}, nil
}

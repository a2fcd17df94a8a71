package account

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/stormint/internal/wallet/signer"
)

// Identity is a signing identity: an EVM address and the private key that controls it.
// The key never leaves the identity; callers hand it sign requests instead.
type Identity struct {
	index   uint32
	path    string
	address common.Address
	key     *ecdsa.PrivateKey
}

func newIdentity(index uint32, path string, key *ecdsa.PrivateKey) *Identity {
	return &Identity{
		index:   index,
		path:    path,
		address: crypto.PubkeyToAddress(key.PublicKey),
		key:     key,
	}
}

// FromPrivateKey wraps an existing key, e.g. a pre-funded sender account.
func FromPrivateKey(key *ecdsa.PrivateKey) (*Identity, error) {
	if key == nil {
		return nil, errors.New("private key is nil")
	}
	return newIdentity(0, "", key), nil
}

// FromPrivateKeyHex parses a hex encoded secp256k1 key, with or without 0x prefix.
func FromPrivateKeyHex(hexKey string) (*Identity, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}
	return FromPrivateKey(key)
}

// Address returns the public address of the identity.
func (i *Identity) Address() common.Address {
	return i.address
}

// Index returns the derivation index, 0 for imported keys.
func (i *Identity) Index() uint32 {
	return i.index
}

// Path returns the BIP44 derivation path, empty for imported keys.
func (i *Identity) Path() string {
	return i.path
}

// Sign signs an EIP-1559 transaction on behalf of this identity.
func (i *Identity) Sign(req *signer.SignEVMRequest) (*signer.SignEVMResponse, error) {
	return signer.SignEIP1559Transaction(req, i.key)
}

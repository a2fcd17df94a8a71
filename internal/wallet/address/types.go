package address

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Service provides EVM key and address derivation from a BIP39 seed
type Service interface {
	// DeriveAddress derives an address from seed (all EVM chains use same path, same address)
	DeriveAddress(seed []byte, path string) (common.Address, error)

	// DerivePrivateKey derives a private key from seed (all EVM chains use same path, same private key)
	DerivePrivateKey(seed []byte, path string) (*ecdsa.PrivateKey, error)

	// GetBIP44Path gets BIP44 path (fixed format for EVM chains)
	GetBIP44Path(addressIndex uint32) string
}

package address

import (
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

const privateKeyLength = 32

// DeriveAddress derives an EVM address from seed and BIP44 path
func (s *service) DeriveAddress(seed []byte, path string) (common.Address, error) {
	privateKey, err := s.DerivePrivateKey(seed, path)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey), nil
}

// DerivePrivateKey derives a private key from seed and BIP44 path
func (s *service) DerivePrivateKey(seed []byte, path string) (*ecdsa.PrivateKey, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	derivedKey, err := deriveKeyFromPath(masterKey, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key from path")
	}

	raw := normalizePrivateKey(derivedKey.Key)
	defer func() {
		for i := range raw {
			raw[i] = 0
		}
	}()

	privateKey, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	return privateKey, nil
}

// normalizePrivateKey returns a fresh 32-byte copy of a bip32 private key,
// dropping the serialization prefix byte and restoring stripped leading zeros.
func normalizePrivateKey(key []byte) []byte {
	if len(key) == privateKeyLength+1 && key[0] == 0 {
		key = key[1:]
	}
	return common.LeftPadBytes(key, privateKeyLength)
}

// deriveKeyFromPath derives a key from BIP44 path
// Path format: m/44'/60'/0'/0/{index}
func deriveKeyFromPath(masterKey *bip32.Key, path string) (*bip32.Key, error) {
	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse BIP44 path")
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return key, nil
}

// parseBIP44Path parses a BIP44 path string into indices
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func parseBIP44Path(path string) ([]uint32, error) {
	if path == "m" {
		return []uint32{}, nil
	}
	if !strings.HasPrefix(path, "m/") {
		return nil, fmt.Errorf("invalid BIP44 path: %s", path)
	}

	parts := strings.Split(path[2:], "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment: %q", part)
		}
		if hardened && index >= uint64(bip32.FirstHardenedChild) {
			return nil, fmt.Errorf("hardened path segment out of range: %q", part)
		}

		child := uint32(index)
		if hardened {
			child += bip32.FirstHardenedChild
		}

		indices = append(indices, child)
	}

	return indices, nil
}

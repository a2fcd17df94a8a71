package seed

import (
	"crypto/sha512"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

// ErrInvalidMnemonic is returned when a phrase fails BIP39 word list or checksum validation.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

const (
	pbkdf2Iterations = 2048
	pbkdf2KeyLength  = 64
	saltPrefix       = "mnemonic"
)

// Seed is the 512-bit BIP39 seed of one mnemonic and passphrase.
// Wipe it once all keys are derived.
type Seed struct {
	b []byte
}

// NormalizeMnemonic collapses runs of whitespace so that the PBKDF2 input matches
// the canonical single-space phrase.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}

// Validate checks mnemonic against the English word list and its checksum.
func Validate(mnemonic string) error {
	if !bip39.IsMnemonicValid(NormalizeMnemonic(mnemonic)) {
		return ErrInvalidMnemonic
	}
	return nil
}

// New stretches mnemonic with PBKDF2-SHA512 as BIP39 specifies.
func New(mnemonic string, passphrase string) (*Seed, error) {
	if err := Validate(mnemonic); err != nil {
		return nil, err
	}

	return &Seed{
		b: pbkdf2.Key(
			[]byte(NormalizeMnemonic(mnemonic)),
			[]byte(saltPrefix+passphrase),
			pbkdf2Iterations,
			pbkdf2KeyLength,
			sha512.New,
		),
	}, nil
}

// Bytes returns a copy of the seed, nil after Wipe.
func (s *Seed) Bytes() []byte {
	if s.b == nil {
		return nil
	}

	out := make([]byte, len(s.b))
	copy(out, s.b)
	return out
}

// Wipe zeroes the seed.
func (s *Seed) Wipe() {
	for i := range s.b {
		s.b[i] = 0
	}
	s.b = nil
}

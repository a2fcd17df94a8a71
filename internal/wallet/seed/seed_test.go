package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/stormint/internal/wallet/seed"
)

//nolint:dupword // Standard development mnemonic
const testMnemonic = "test test test test test test test test test test test junk"

func TestNewMatchesBIP39(t *testing.T) {
	s, err := seed.New(testMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, bip39.NewSeed(testMnemonic, ""), s.Bytes())

	withPassphrase, err := seed.New(testMnemonic, "TREZOR")
	require.NoError(t, err)
	assert.Equal(t, bip39.NewSeed(testMnemonic, "TREZOR"), withPassphrase.Bytes())
	assert.NotEqual(t, s.Bytes(), withPassphrase.Bytes())
}

func TestNewNormalizesWhitespace(t *testing.T) {
	s, err := seed.New("  test test test test test test\ttest test test test test   junk ", "")
	require.NoError(t, err)
	assert.Equal(t, bip39.NewSeed(testMnemonic, ""), s.Bytes())
}

func TestNewRejectsInvalidMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
	}{
		{name: "empty", mnemonic: ""},
		{name: "unknown words", mnemonic: "invalid mnemonic phrase"},
		//nolint:dupword // Checksum failure case
		{name: "bad checksum", mnemonic: "test test test test test test test test test test test test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := seed.New(tt.mnemonic, "")
			require.ErrorIs(t, err, seed.ErrInvalidMnemonic)
			assert.Nil(t, s)
			require.ErrorIs(t, seed.Validate(tt.mnemonic), seed.ErrInvalidMnemonic)
		})
	}
}

func TestBytesReturnsCopy(t *testing.T) {
	s, err := seed.New(testMnemonic, "")
	require.NoError(t, err)

	b := s.Bytes()
	b[0] ^= 0xff
	assert.NotEqual(t, b, s.Bytes())
}

func TestWipe(t *testing.T) {
	s, err := seed.New(testMnemonic, "")
	require.NoError(t, err)

	s.Wipe()
	assert.Nil(t, s.Bytes())
}

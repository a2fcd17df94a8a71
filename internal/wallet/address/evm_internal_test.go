package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBIP44Path(t *testing.T) {
	indices, err := parseBIP44Path("m/44'/60'/0'/0/7")
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x8000002c, 0x8000003c, 0x80000000, 0, 7}, indices)

	indices, err = parseBIP44Path("m/44h/60h/0h/1/2")
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x8000002c, 0x8000003c, 0x80000000, 1, 2}, indices)
}

func TestParseBIP44PathInvalid(t *testing.T) {
	for _, path := range []string{"", "44'/60'", "m/", "m/abc", "m/44'//0", "m/2147483648'"} {
		_, err := parseBIP44Path(path)
		assert.Error(t, err, path)
	}
}

func TestNormalizePrivateKey(t *testing.T) {
	short := []byte{1, 2, 3}
	out := normalizePrivateKey(short)
	require.Len(t, out, privateKeyLength)
	assert.Equal(t, byte(3), out[privateKeyLength-1])
	assert.Equal(t, byte(0), out[0])

	prefixed := make([]byte, privateKeyLength+1)
	prefixed[privateKeyLength] = 9
	out = normalizePrivateKey(prefixed)
	require.Len(t, out, privateKeyLength)
	assert.Equal(t, byte(9), out[privateKeyLength-1])
}

package keystore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/stormint/internal/test"
	"github/chapool/stormint/internal/wallet/keystore"
)

func TestSealOpen(t *testing.T) {
	file, err := keystore.Seal(test.DevMnemonic, "hunter2", keystore.LightScryptParams())
	require.NoError(t, err)

	assert.Equal(t, 3, file.Version)
	assert.Equal(t, "aes-128-ctr", file.Crypto.Cipher)
	assert.Equal(t, "scrypt", file.Crypto.KDF)
	assert.NotEmpty(t, file.ID)

	mnemonic, err := keystore.Open(file, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, test.DevMnemonic, mnemonic)

	_, err = keystore.Open(file, "wrong")
	require.ErrorIs(t, err, keystore.ErrInvalidPassword)
}

func TestSealUsesFreshSalt(t *testing.T) {
	a, err := keystore.Seal(test.DevMnemonic, "pw", keystore.LightScryptParams())
	require.NoError(t, err)
	b, err := keystore.Seal(test.DevMnemonic, "pw", keystore.LightScryptParams())
	require.NoError(t, err)

	assert.NotEqual(t, a.Crypto.KDFParams.Salt, b.Crypto.KDFParams.Salt)
	assert.NotEqual(t, a.Crypto.Ciphertext, b.Crypto.Ciphertext)
}

func TestOpenRejectsUnknownFormat(t *testing.T) {
	file, err := keystore.Seal(test.DevMnemonic, "pw", keystore.LightScryptParams())
	require.NoError(t, err)

	file.Crypto.KDF = "pbkdf2"
	_, err = keystore.Open(file, "pw")
	require.ErrorIs(t, err, keystore.ErrUnsupported)
}

func TestServiceCreateAndDecrypt(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "mnemonic.json")
	svc := keystore.NewService(keystore.LightScryptParams())

	exists, err := svc.Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.DecryptMnemonic(ctx, path, "pw")
	require.ErrorIs(t, err, keystore.ErrKeystoreNotFound)

	created, err := svc.Create(ctx, path, test.DevMnemonic, "pw")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk keystore.File
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, created.ID, onDisk.ID)
	assert.NotContains(t, string(data), "test test test")

	mnemonic, err := svc.DecryptMnemonic(ctx, path, "pw")
	require.NoError(t, err)
	assert.Equal(t, test.DevMnemonic, mnemonic)

	_, err = svc.Create(ctx, path, test.DevMnemonic, "pw")
	require.ErrorIs(t, err, keystore.ErrKeystoreExists)
}

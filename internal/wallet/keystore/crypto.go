package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 32
	ivSize   = 16
	keySize  = 16
)

// Seal encrypts mnemonic with a key derived from password.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func Seal(mnemonic string, password string, params ScryptParams) (*File, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	ciphertext, err := xorAES128CTR(derivedKey[:keySize], iv, []byte(mnemonic))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt mnemonic")
	}

	file := &File{
		Version: version,
		ID:      uuid.New().String(),
	}
	file.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	file.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	file.Crypto.Cipher = cipherName
	file.Crypto.KDF = kdfName
	file.Crypto.KDFParams.DKLen = params.DKLen
	file.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	file.Crypto.KDFParams.N = params.N
	file.Crypto.KDFParams.R = params.R
	file.Crypto.KDFParams.P = params.P
	file.Crypto.MAC = hex.EncodeToString(crypto.Keccak256(derivedKey[keySize:2*keySize], ciphertext))

	return file, nil
}

// Open decrypts the mnemonic held by file.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func Open(file *File, password string) (string, error) {
	if file.Version != version || file.Crypto.Cipher != cipherName || file.Crypto.KDF != kdfName {
		return "", errors.Wrapf(ErrUnsupported, "version %d, cipher %q, kdf %q",
			file.Version, file.Crypto.Cipher, file.Crypto.KDF)
	}

	salt, err := hex.DecodeString(file.Crypto.KDFParams.Salt)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode salt")
	}

	iv, err := hex.DecodeString(file.Crypto.CipherParams.IV)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode IV")
	}

	ciphertext, err := hex.DecodeString(file.Crypto.Ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode ciphertext")
	}

	expectedMAC, err := hex.DecodeString(file.Crypto.MAC)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode MAC")
	}

	params := file.Crypto.KDFParams
	if params.DKLen < 2*keySize {
		return "", errors.Wrapf(ErrUnsupported, "dklen %d", params.DKLen)
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}

	mac := crypto.Keccak256(derivedKey[keySize:2*keySize], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return "", ErrInvalidPassword
	}

	plaintext, err := xorAES128CTR(derivedKey[:keySize], iv, ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decrypt mnemonic")
	}

	return string(plaintext), nil
}

// xorAES128CTR encrypts or decrypts data using AES-128-CTR mode
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func xorAES128CTR(key []byte, iv []byte, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}
	if len(iv) != block.BlockSize() {
		return nil, errors.Errorf("IV must be %d bytes, got %d", block.BlockSize(), len(iv))
	}

	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)

	return out, nil
}

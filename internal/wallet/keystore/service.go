package keystore

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github/chapool/stormint/internal/util"
)

// Service stores a mnemonic encrypted on disk
type Service interface {
	// Create encrypts mnemonic and writes it to path
	Create(ctx context.Context, path string, mnemonic string, password string) (*File, error)

	// DecryptMnemonic reads the keystore at path and decrypts its mnemonic
	DecryptMnemonic(ctx context.Context, path string, password string) (string, error)

	// Exists checks if a keystore is present at path
	Exists(path string) (bool, error)
}

type service struct {
	params ScryptParams
}

// NewService creates a keystore service sealing with params.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(params ScryptParams) Service {
	return &service{
		params: params,
	}
}

func (s *service) Create(ctx context.Context, path string, mnemonic string, password string) (*File, error) {
	log := util.LogFromContext(ctx)

	exists, err := s.Exists(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check keystore existence")
	}
	if exists {
		return nil, errors.Wrapf(ErrKeystoreExists, "path %s", path)
	}

	file, err := Seal(mnemonic, password, s.params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encrypt mnemonic")
		return nil, err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal keystore JSON")
	}

	//nolint:mnd // owner read/write only
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, errors.Wrapf(err, "failed to write keystore %s", path)
	}

	log.Info().Str("path", path).Str("id", file.ID).Msg("Keystore created")

	return file, nil
}

func (s *service) DecryptMnemonic(ctx context.Context, path string, password string) (string, error) {
	log := util.LogFromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.Wrapf(ErrKeystoreNotFound, "path %s", path)
		}
		return "", errors.Wrapf(err, "failed to read keystore %s", path)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal keystore JSON")
	}

	mnemonic, err := Open(&file, password)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to decrypt mnemonic")
		return "", err
	}

	return mnemonic, nil
}

func (s *service) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, errors.Wrapf(err, "failed to stat %s", path)
}

package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ErrConfigExists is returned by WriteFile when path exists and overwrite is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteFile writes cfg as TOML. Secrets are written as given, so the file is
// only readable by its owner.
func WriteFile(path string, cfg Config, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.Wrap(ErrConfigExists, path)
		}
		return errors.Wrapf(err, "failed to create %s", path)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}

	return errors.Wrapf(f.Close(), "failed to close %s", path)
}

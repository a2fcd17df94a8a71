package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Load reads path (TOML) on top of DefaultConfig and applies STORMINT_*
// environment overrides, after loading a .env file from the working directory
// if there is one. A missing file is only an error when it is not the default.
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "failed to load .env")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if path == "" {
		path = DefaultConfigFile
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) || path != DefaultConfigFile {
			return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
		}
		log.Debug().Str("path", path).Msg("No config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	return cfg, nil
}

// setDefaults registers every key so that AutomaticEnv also covers keys
// missing from the file.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("network.rpc_url", cfg.Network.RPCURL)
	v.SetDefault("network.pool_size", cfg.Network.PoolSize)

	v.SetDefault("account.mnemonic", cfg.Account.Mnemonic)
	v.SetDefault("account.passphrase", cfg.Account.Passphrase)
	v.SetDefault("account.keystore", cfg.Account.Keystore)
	v.SetDefault("account.keystore_password", cfg.Account.KeystorePassword)
	v.SetDefault("account.start_index", cfg.Account.StartIndex)
	v.SetDefault("account.end_index", cfg.Account.EndIndex)
	v.SetDefault("account.workers", cfg.Account.Workers)

	v.SetDefault("distributor.artifact", cfg.Distributor.Artifact)
	v.SetDefault("distributor.address", cfg.Distributor.Address)
	v.SetDefault("distributor.function", cfg.Distributor.Function)
	v.SetDefault("distributor.sender_key", cfg.Distributor.SenderKey)
	v.SetDefault("distributor.amount", cfg.Distributor.Amount)

	v.SetDefault("mint.artifact", cfg.Mint.Artifact)
	v.SetDefault("mint.address", cfg.Mint.Address)
	v.SetDefault("mint.function", cfg.Mint.Function)
	v.SetDefault("mint.args", cfg.Mint.Args)
	v.SetDefault("mint.value", cfg.Mint.Value)
	v.SetDefault("mint.concurrency", cfg.Mint.Concurrency)

	v.SetDefault("executor.timeout", cfg.Executor.Timeout)
	v.SetDefault("executor.poll_interval", cfg.Executor.PollInterval)

	v.SetDefault("logger.level", cfg.Logger.Level)
	v.SetDefault("logger.pretty_print_console", cfg.Logger.PrettyPrintConsole)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.listen_address", cfg.Metrics.ListenAddress)
}

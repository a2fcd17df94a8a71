package config

import (
	"time"
)

// DefaultConfigFile is read when --config is not given.
const DefaultConfigFile = "stormint.toml"

// EnvPrefix prefixes environment overrides, e.g. STORMINT_NETWORK_RPC_URL.
const EnvPrefix = "STORMINT"

type Network struct {
	// RPCURL is one JSON-RPC endpoint or a comma separated failover list.
	RPCURL   string `mapstructure:"rpc_url" toml:"rpc_url"`
	PoolSize int    `mapstructure:"pool_size" toml:"pool_size"`
}

type Account struct {
	Mnemonic   string `mapstructure:"mnemonic" toml:"mnemonic"`
	Passphrase string `mapstructure:"passphrase" toml:"passphrase"`
	// Keystore is an encrypted mnemonic file, read when Mnemonic is empty.
	Keystore         string `mapstructure:"keystore" toml:"keystore"`
	KeystorePassword string `mapstructure:"keystore_password" toml:"keystore_password"`
	StartIndex       uint32 `mapstructure:"start_index" toml:"start_index"`
	EndIndex         uint32 `mapstructure:"end_index" toml:"end_index"`
	Workers          int    `mapstructure:"workers" toml:"workers"`
}

type Distributor struct {
	Artifact string `mapstructure:"artifact" toml:"artifact"`
	Address  string `mapstructure:"address" toml:"address"`
	Function string `mapstructure:"function" toml:"function"`
	// SenderKey is the hex private key of the funded sender.
	SenderKey string `mapstructure:"sender_key" toml:"sender_key"`
	// Amount in ether paid to every derived identity.
	Amount string `mapstructure:"amount" toml:"amount"`
}

type Mint struct {
	Artifact    string   `mapstructure:"artifact" toml:"artifact"`
	Address     string   `mapstructure:"address" toml:"address"`
	Function    string   `mapstructure:"function" toml:"function"`
	Args        []string `mapstructure:"args" toml:"args"`
	Value       string   `mapstructure:"value" toml:"value"`
	Concurrency int      `mapstructure:"concurrency" toml:"concurrency"`
}

type Executor struct {
	Timeout      time.Duration `mapstructure:"timeout" toml:"timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval" toml:"poll_interval"`
}

type Logger struct {
	Level              string `mapstructure:"level" toml:"level"`
	PrettyPrintConsole bool   `mapstructure:"pretty_print_console" toml:"pretty_print_console"`
}

type Metrics struct {
	Enabled       bool   `mapstructure:"enabled" toml:"enabled"`
	ListenAddress string `mapstructure:"listen_address" toml:"listen_address"`
}

type Config struct {
	Network     Network     `mapstructure:"network" toml:"network"`
	Account     Account     `mapstructure:"account" toml:"account"`
	Distributor Distributor `mapstructure:"distributor" toml:"distributor"`
	Mint        Mint        `mapstructure:"mint" toml:"mint"`
	Executor    Executor    `mapstructure:"executor" toml:"executor"`
	Logger      Logger      `mapstructure:"logger" toml:"logger"`
	Metrics     Metrics     `mapstructure:"metrics" toml:"metrics"`
}

// DefaultConfig targets a local development node.
func DefaultConfig() Config {
	return Config{
		Network: Network{
			RPCURL:   "http://127.0.0.1:8545",
			PoolSize: 16,
		},
		Account: Account{
			StartIndex: 0,
			EndIndex:   10,
		},
		Distributor: Distributor{
			Artifact: "contracts/out/Distributor.sol/Distributor.json",
			Function: "distributeEther",
			Amount:   "0.01",
		},
		Mint: Mint{
			Artifact: "contracts/out/FreeMint.sol/FreeMint.json",
			Function: "mint",
			Args:     []string{},
			Value:    "0",
		},
		Executor: Executor{
			Timeout:      2 * time.Minute,
			PollInterval: 3 * time.Second,
		},
		Logger: Logger{
			Level:              "info",
			PrettyPrintConsole: true,
		},
		Metrics: Metrics{
			Enabled:       false,
			ListenAddress: "127.0.0.1:9090",
		},
	}
}

package app

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/stormint/internal/artifact"
	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/metrics"
	"github/chapool/stormint/internal/util"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/distributor"
	"github/chapool/stormint/internal/wallet/executor"
	"github/chapool/stormint/internal/wallet/keystore"
	"github/chapool/stormint/internal/wallet/mint"
	"github/chapool/stormint/internal/wallet/rpc"
)

const metricsShutdownTimeout = 5 * time.Second

// App is a central struct keeping all the dependencies of a batch run.
// It is initialized with wire: to add a component, declare it here, add a
// provider in providers.go and list it in wire.Build() in wire.go.
//
// Components labeled as `wire:"-"` are initialized after InitNewApp.
type App struct {
	MetricsServer *metrics.Server `wire:"-"`

	Config      config.Config
	Pool        *rpc.Pool
	Metrics     *metrics.Service
	Keystore    keystore.Service
	Deriver     *account.Deriver
	Submitter   executor.Service
	Distributor distributor.Service
	Minter      mint.Service
}

func newAppWithComponents(
	cfg config.Config,
	pool *rpc.Pool,
	m *metrics.Service,
	ks keystore.Service,
	deriver *account.Deriver,
	submitter executor.Service,
	dist distributor.Service,
	minter mint.Service,
) *App {
	return &App{
		Config:      cfg,
		Pool:        pool,
		Metrics:     m,
		Keystore:    ks,
		Deriver:     deriver,
		Submitter:   submitter,
		Distributor: dist,
		Minter:      minter,
	}
}

// StartMetrics serves /metrics when enabled in the configuration.
func (a *App) StartMetrics() {
	if !a.Config.Metrics.Enabled || a.MetricsServer != nil {
		return
	}

	a.MetricsServer = metrics.NewServer(a.Metrics, a.Config.Metrics.ListenAddress)
	a.MetricsServer.Start()
}

// Contract loads an artifact and binds it to address on the configured network.
func (a *App) Contract(artifactPath string, address string) (executor.Contract, error) {
	if !common.IsHexAddress(address) {
		return executor.Contract{}, errors.Errorf("invalid contract address %q", address)
	}

	art, err := artifact.Load(artifactPath)
	if err != nil {
		return executor.Contract{}, err
	}

	log.Debug().
		Str("artifact", art.Name).
		Str("address", address).
		Int("functions", len(art.ABI.Methods)).
		Msg("Loaded contract artifact")

	return executor.Contract{
		Endpoint: a.Config.Network.RPCURL,
		ABI:      &art.ABI,
		Address:  common.HexToAddress(address),
	}, nil
}

// Mnemonic returns account.mnemonic, else decrypts account.keystore, else
// prompts for the mnemonic on the terminal.
func (a *App) Mnemonic(ctx context.Context) (string, error) {
	acc := a.Config.Account
	if acc.Mnemonic != "" {
		return acc.Mnemonic, nil
	}

	if acc.Keystore != "" {
		password := acc.KeystorePassword
		if password == "" {
			var err error
			password, err = util.ReadSecret("Keystore password: ")
			if err != nil {
				return "", errors.Wrap(err, "account.keystore_password is not configured and cannot be prompted for")
			}
		}
		return a.Keystore.DecryptMnemonic(ctx, acc.Keystore, password)
	}

	mnemonic, err := util.ReadSecret("Mnemonic: ")
	if err != nil {
		return "", errors.Wrap(err, "account.mnemonic is not configured and cannot be prompted for")
	}

	return mnemonic, nil
}

// DeriveIdentities derives the configured account range from mnemonic.
func (a *App) DeriveIdentities(mnemonic string) ([]*account.Identity, error) {
	return a.Deriver.Derive(mnemonic, account.Range{
		Start: a.Config.Account.StartIndex,
		End:   a.Config.Account.EndIndex,
	})
}

// Shutdown stops the metrics server and closes all RPC connections.
func (a *App) Shutdown(ctx context.Context) error {
	defer a.Pool.Close()

	if a.MetricsServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, metricsShutdownTimeout)
	defer cancel()

	if err := a.MetricsServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "failed to shutdown metrics server")
	}
	return nil
}

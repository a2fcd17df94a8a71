package app

import (
	"context"

	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/metrics"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/address"
	"github/chapool/stormint/internal/wallet/distributor"
	"github/chapool/stormint/internal/wallet/executor"
	"github/chapool/stormint/internal/wallet/keystore"
	"github/chapool/stormint/internal/wallet/mint"
	"github/chapool/stormint/internal/wallet/rpc"
)

func NewPool(cfg config.Config) (*rpc.Pool, error) {
	return rpc.NewPool(cfg.Network.PoolSize)
}

// NewDialFunc resolves endpoints through the shared pool.
func NewDialFunc(pool *rpc.Pool) executor.DialFunc {
	return func(ctx context.Context, endpoint string) (executor.Backend, error) {
		client, err := pool.Get(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

//nolint:ireturn
func NewSubmitter(cfg config.Config, dial executor.DialFunc) executor.Service {
	return executor.NewService(dial, executor.Options{
		Timeout:      cfg.Executor.Timeout,
		PollInterval: cfg.Executor.PollInterval,
	})
}

//nolint:ireturn
func NewKeystore() keystore.Service {
	return keystore.NewService(keystore.DefaultScryptParams())
}

func NewDeriver(cfg config.Config, m *metrics.Service) *account.Deriver {
	return account.NewDeriver(address.NewService(), account.Options{
		MaxWorkers: cfg.Account.Workers,
		Passphrase: cfg.Account.Passphrase,
		Observer:   m,
	})
}

//nolint:ireturn
func NewDistributor(cfg config.Config, submitter executor.Service) distributor.Service {
	return distributor.NewService(submitter, distributor.Options{
		Function: cfg.Distributor.Function,
	})
}

//nolint:ireturn
func NewMinter(cfg config.Config, submitter executor.Service, m *metrics.Service) mint.Service {
	return mint.NewService(submitter, mint.Options{
		MaxConcurrency: cfg.Mint.Concurrency,
		Observer:       m,
	})
}

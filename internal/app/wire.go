//go:build wireinject

package app

import (
	"github.com/google/wire"
	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/metrics"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing an app
var serviceSet = wire.NewSet(
	newAppWithComponents,
	NewPool,
	NewDialFunc,
	NewSubmitter,
	NewKeystore,
	NewDeriver,
	NewDistributor,
	NewMinter,
	metrics.New,
)

// InitNewApp returns a new App instance.
func InitNewApp(
	_ config.Config,
) (*App, error) {
	wire.Build(serviceSet)
	return new(App), nil
}

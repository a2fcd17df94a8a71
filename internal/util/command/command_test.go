package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/stormint/internal/app"
	"github/chapool/stormint/internal/config"
	"github/chapool/stormint/internal/util"
	"github/chapool/stormint/internal/util/command"
)

func TestWithApp(t *testing.T) {
	ctx := t.Context()

	var testError = errors.New("test error")

	cfg := config.DefaultConfig()
	cfg.Logger.PrettyPrintConsole = false
	resultErr := command.WithApp(ctx, cfg, func(ctx context.Context, a *app.App) error {
		assert.NotNil(t, a.Pool)
		assert.NotNil(t, util.LogFromContext(ctx))
		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestWithAppInvalidLogLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logger.Level = "loud"

	called := false
	err := command.WithApp(t.Context(), cfg, func(_ context.Context, _ *app.App) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestNewSubcommandGroup(t *testing.T) {
	ran := false
	sub := &cobra.Command{
		Use: "list",
		RunE: func(_ *cobra.Command, _ []string) error {
			ran = true
			return nil
		},
	}

	root := &cobra.Command{Use: "app"}
	command.AddConfigFlag(root)
	root.AddCommand(command.NewSubcommandGroup("account", sub))

	root.SetArgs([]string{"account", "list", "--config", "custom.toml"})
	require.NoError(t, root.Execute())
	assert.True(t, ran)
	assert.Equal(t, "custom.toml", sub.Flag("config").Value.String())
}

package account

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/app"
	"github/chapool/stormint/internal/util"
	"github/chapool/stormint/internal/util/command"
	"github/chapool/stormint/internal/wallet/seed"
)

const outFlag = "out"

func newSeal() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt the mnemonic into a keystore file",
		Long: `Encrypts account.mnemonic (or a mnemonic typed at the prompt) with scrypt
and AES-128-CTR and writes it to --out or account.keystore. Set account.keystore
afterwards and drop account.mnemonic from the configuration.`,
		Args: cobra.NoArgs,
		RunE: runSeal,
	}

	cmd.Flags().String(outFlag, "", "keystore file to create (overrides account.keystore)")

	return cmd
}

func runSeal(cmd *cobra.Command, _ []string) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	path := cfg.Account.Keystore
	if cmd.Flags().Changed(outFlag) {
		path, _ = cmd.Flags().GetString(outFlag)
	}
	if path == "" {
		return errors.New("no keystore path: set --out or account.keystore")
	}

	mnemonic := cfg.Account.Mnemonic
	if mnemonic == "" {
		mnemonic, err = util.ReadSecret("Mnemonic: ")
		if err != nil {
			return errors.Wrap(err, "account.mnemonic is not configured and cannot be prompted for")
		}
	}
	mnemonic = seed.NormalizeMnemonic(mnemonic)
	if err := seed.Validate(mnemonic); err != nil {
		return errors.Wrap(err, "mnemonic is not a valid BIP39 phrase")
	}

	password, err := newPassword(cfg.Account.KeystorePassword)
	if err != nil {
		return err
	}

	return command.WithApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) error {
		file, err := a.Keystore.Create(ctx, path, mnemonic, password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Keystore %s written to %s\n", file.ID, path)
		return nil
	})
}

func newPassword(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	password, err := util.ReadSecret("New keystore password: ")
	if err != nil {
		return "", errors.Wrap(err, "account.keystore_password is not configured and cannot be prompted for")
	}
	if password == "" {
		return "", errors.New("keystore password must not be empty")
	}

	confirm, err := util.ReadSecret("Repeat password: ")
	if err != nil {
		return "", err
	}
	if confirm != password {
		return "", errors.New("passwords do not match")
	}

	return password, nil
}

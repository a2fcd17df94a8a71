package command

import (
	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/config"
)

const (
	startFlag = "start"
	endFlag   = "end"
)

// AddRangeFlags registers --start and --end overriding the account range.
func AddRangeFlags(cmd *cobra.Command) {
	cmd.Flags().Uint32(startFlag, 0, "first derivation index (overrides account.start_index)")
	cmd.Flags().Uint32(endFlag, 0, "derivation index after the last one (overrides account.end_index)")
}

// ApplyRangeFlags copies explicitly set range flags into cfg.
func ApplyRangeFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed(startFlag) {
		start, err := cmd.Flags().GetUint32(startFlag)
		if err != nil {
			return err
		}
		cfg.Account.StartIndex = start
	}

	if cmd.Flags().Changed(endFlag) {
		end, err := cmd.Flags().GetUint32(endFlag)
		if err != nil {
			return err
		}
		cfg.Account.EndIndex = end
	}

	return nil
}

package account

import (
	"github.com/spf13/cobra"
	"github/chapool/stormint/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("account",
		newList(),
		newSeal(),
	)
}

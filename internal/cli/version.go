package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the amber release version.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/amber"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the amber version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "amber v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}

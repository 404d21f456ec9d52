package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the crm release version.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/crm"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the crm version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "crm v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}

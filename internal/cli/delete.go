package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/contacts"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a contact record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			if err := a.withStore(func(s *contacts.Store) error {
				return s.Delete(email)
			}); err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd, map[string]string{"deleted": email})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted contact: %s\n", email)
			return nil
		},
	}
}

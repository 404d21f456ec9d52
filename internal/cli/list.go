package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/contacts"
	"github.com/mesh-intelligence/crm/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every contact record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var docs []types.Document
			if err := a.withStore(func(s *contacts.Store) error {
				var err error
				docs, err = s.ReadAll()
				return err
			}); err != nil {
				return err
			}

			list := make([]types.Contact, 0, len(docs))
			for _, doc := range docs {
				list = append(list, types.ContactFromDocument(doc))
			}
			if a.flags.jsonMode {
				return printJSON(cmd, list)
			}
			printContacts(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

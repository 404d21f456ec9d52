package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/contacts"
	"github.com/mesh-intelligence/crm/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <email>",
		Short: "Show one contact record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c types.Contact
			if err := a.withStore(func(s *contacts.Store) error {
				var err error
				c, err = s.Get(args[0])
				return err
			}); err != nil {
				return err
			}
			return a.showContact(cmd, c)
		},
	}
}

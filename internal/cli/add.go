package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/contacts"
	"github.com/mesh-intelligence/crm/pkg/types"
)

type addFlags struct {
	email     string
	firstName string
	lastName  string
	phone     string
	address   string
}

func newAddCmd(a *app) *cobra.Command {
	var f addFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact record",
		Long: "Add validates and normalizes every field, then stores the record.\n" +
			"The email must not belong to an existing record.",
		Example: "  crm add --email jane@example.com --first-name jane --last-name doe\n" +
			"  crm add --email joe@example.com --first-name joe --phone 0123456789 --address \"123 main street\"",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := contacts.NewContact(f.email, f.firstName, f.lastName, f.phone, f.address)
			if err != nil {
				return classify(err)
			}
			if err := a.withStore(func(s *contacts.Store) error {
				return s.Create(c)
			}); err != nil {
				return err
			}
			return a.printCreated(cmd, c)
		},
	}

	cmd.Flags().StringVar(&f.email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name (required)")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number, 10 digits")
	cmd.Flags().StringVar(&f.address, "address", "", "postal address")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	return cmd
}

func (a *app) printCreated(cmd *cobra.Command, c types.Contact) error {
	if a.flags.jsonMode {
		return printJSON(cmd, c)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created contact: %s\n", c.Email)
	return nil
}

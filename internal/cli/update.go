package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/contacts"
	"github.com/mesh-intelligence/crm/pkg/types"
)

var errNoAssignments = errors.New("at least one --set key=value is required")

func newUpdateCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update <email>",
		Short: "Update fields of a contact record",
		Long: "Update applies a partial update. Each --set names a record field\n" +
			"(email, first_name, last_name, phone_number, address) and its new\n" +
			"value. Nothing is written unless every field is accepted.",
		Example: "  crm update jane@example.com --set last_name=smith\n" +
			"  crm update jane@example.com --set \"address=321 main street\" --set phone_number=0192837465",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(sets)
			if err != nil {
				return userError(err)
			}

			email := args[0]
			var c types.Contact
			if err := a.withStore(func(s *contacts.Store) error {
				if err := s.Update(email, fields); err != nil {
					return err
				}
				if v, ok := fields[types.FieldEmail]; ok {
					email = v
				}
				var err error
				c, err = s.Get(email)
				return err
			}); err != nil {
				return err
			}
			return a.showContact(cmd, c)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field assignment key=value (repeatable)")
	return cmd
}

// parseAssignments turns key=value pairs into an update map. The value is
// everything after the first '='; a repeated key keeps its last value.
func parseAssignments(sets []string) (map[string]string, error) {
	if len(sets) == 0 {
		return nil, errNoAssignments
	}
	fields := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", s)
		}
		fields[key] = value
	}
	return fields, nil
}

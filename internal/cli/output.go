package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// printContacts writes contacts in the human form, separated by blank lines.
func printContacts(w io.Writer, list []types.Contact) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No contacts")
		return
	}
	parts := make([]string, len(list))
	for i, c := range list {
		parts[i] = c.String()
	}
	fmt.Fprintln(w, strings.Join(parts, "\n\n"))
}

// showContact writes one contact as JSON or in the human form.
func (a *app) showContact(cmd *cobra.Command, c types.Contact) error {
	if a.flags.jsonMode {
		return printJSON(cmd, c)
	}
	fmt.Fprintln(cmd.OutOrStdout(), c.String())
	return nil
}

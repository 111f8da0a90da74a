package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/invoicedesk/internal/service"
)

var setCmd = &cobra.Command{
	Use:   "set [draft]",
	Short: "Update invoice and client details",
	Long: `Update invoice metadata and client details on a saved draft.
Only the flags you pass are changed. Dates accept YYYY-MM-DD or DD-MM-YYYY;
pass an empty value to clear a date.

Examples:
  invoicedesk set INV-042 --client "Acme Corp" --address "12 Hill Rd\nPune"
  invoicedesk set 3f2a --received 500 --due 2025-09-30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := editDraft(ctx, args[0], func(e *service.Editor) error {
			return applyMetadataFlags(cmd, e)
		})
		if err != nil {
			return err
		}

		printSaved(draft)
		return nil
	},
}

func addMetadataFlags(cmd *cobra.Command) {
	cmd.Flags().String("number", "", "Invoice number")
	cmd.Flags().String("date", "", "Invoice date")
	cmd.Flags().String("due", "", "Due date")
	cmd.Flags().String("client", "", "Client name")
	cmd.Flags().String("address", "", `Client address (use \n for line breaks)`)
	cmd.Flags().String("contact", "", "Client contact (email or phone)")
	cmd.Flags().String("received", "", "Amount already received")
}

// applyMetadataFlags sets every changed metadata flag on the editor. Bad
// dates are reported together after the other fields have been applied.
func applyMetadataFlags(cmd *cobra.Command, e *service.Editor) error {
	setters := []struct {
		flag string
		set  func(string) error
	}{
		{"number", e.SetNumber},
		{"date", e.SetIssueDate},
		{"due", e.SetDueDate},
		{"client", e.SetClientName},
		{"address", func(v string) error { return e.SetClientAddress(unescapeNewlines(v)) }},
		{"contact", e.SetClientContact},
		{"received", e.SetReceivedAmount},
	}

	var errs []error
	for _, s := range setters {
		if !cmd.Flags().Changed(s.flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(s.flag)
		if err := s.set(v); err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", s.flag, err))
		}
	}
	return errors.Join(errs...)
}

func unescapeNewlines(s string) string {
	out := make([]rune, 0, len(s))
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] == '\\' && i+1 < len(r) && r[i+1] == 'n' {
			out = append(out, '\n')
			i++
			continue
		}
		out = append(out, r[i])
	}
	return string(out)
}

func init() {
	addMetadataFlags(setCmd)
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/invoicedesk/internal/service"
)

var taxCmd = &cobra.Command{
	Use:   "tax [draft] [on|off]",
	Short: "Enable or disable tax on a draft",
	Long: `Enable or disable tax on a draft, optionally changing the rate.

Examples:
  invoicedesk tax INV-042 on --rate 12
  invoicedesk tax INV-042 off`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch args[1] {
		case "on":
			enabled = true
		case "off":
		default:
			return fmt.Errorf("expected on or off, got %q", args[1])
		}

		ctx := context.Background()
		draft, err := editDraft(ctx, args[0], func(e *service.Editor) error {
			if cmd.Flags().Changed("rate") {
				rate, _ := cmd.Flags().GetString("rate")
				if err := e.SetTaxRate(rate); err != nil {
					return fmt.Errorf("--rate: %w", err)
				}
			}
			return e.SetTaxEnabled(enabled)
		})
		if err != nil {
			return err
		}

		printSaved(draft)
		return nil
	},
}

func init() {
	taxCmd.Flags().String("rate", "", "Tax rate in percent")
}

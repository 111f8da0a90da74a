package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/service"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new draft invoice",
	Long: `Create a new draft invoice with a single empty row.

Examples:
  invoicedesk new --number INV-042 --client "Acme Corp"
  invoicedesk new --number INV-043 --due 2025-09-30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		e := appInstance.Editor

		e.Reset()
		e.SetMode(domain.ModeEdit)
		if err := applyMetadataFlags(cmd, e); err != nil {
			return err
		}

		draft, err := appInstance.DraftService.Save(ctx, e)
		if err != nil {
			return fmt.Errorf("failed to save draft: %w", err)
		}

		fmt.Printf("✓ Created draft %s (%s)\n", service.ShortID(draft.ID), draft.Number)
		fmt.Printf("  ID: %s\n", draft.ID)
		return nil
	},
}

func init() {
	addMetadataFlags(newCmd)
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/invoicedesk/internal/service"
)

var signatureCmd = &cobra.Command{
	Use:   "signature [draft] [image]",
	Short: "Attach or remove the signature image",
	Long: `Attach a PNG or JPEG signature to a draft, or remove it with --clear.

Examples:
  invoicedesk signature INV-042 ~/sign.png
  invoicedesk signature INV-042 --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remove, _ := cmd.Flags().GetBool("clear")
		if remove == (len(args) == 2) {
			return fmt.Errorf("pass either an image path or --clear")
		}

		ctx := context.Background()
		draft, err := editDraft(ctx, args[0], func(e *service.Editor) error {
			if remove {
				return e.ClearSignature()
			}
			sig, err := service.ReadSignature(args[1], service.MaxSignatureBytes)
			if err != nil {
				return err
			}
			return e.SetSignature(sig)
		})
		if err != nil {
			return err
		}

		if remove {
			fmt.Printf("✓ Removed signature from %s\n", draft.Number)
		} else {
			fmt.Printf("✓ Attached signature to %s\n", draft.Number)
		}
		return nil
	},
}

func init() {
	signatureCmd.Flags().Bool("clear", false, "Remove the signature")
}

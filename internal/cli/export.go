package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [draft]",
	Short: "Export a draft as PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := openDraft(ctx, args[0]); err != nil {
			return err
		}

		path, err := appInstance.Exporter.Export(ctx)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("✓ Exported to %s\n", path)
		return nil
	},
}

var printCmd = &cobra.Command{
	Use:   "print [draft]",
	Short: "Write a printable text copy of a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := openDraft(ctx, args[0]); err != nil {
			return err
		}

		path, err := appInstance.Exporter.Print(ctx)
		if err != nil {
			return fmt.Errorf("print failed: %w", err)
		}

		fmt.Printf("✓ Print copy written to %s\n", path)
		return nil
	},
}

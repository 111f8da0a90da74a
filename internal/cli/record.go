package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Import an invoice record from JSON",
	Long: `Import a serialized invoice record. Fields missing from the file keep
their defaults; fields that fail to parse are reported and skipped.

By default a new draft is created. Use --draft to merge into an existing one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var rec domain.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		e := appInstance.Editor
		ref, _ := cmd.Flags().GetString("draft")
		if ref != "" {
			if err := openDraft(ctx, ref); err != nil {
				return err
			}
		} else {
			e.Reset()
		}

		if err := e.Load(rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}

		draft, err := appInstance.DraftService.Save(ctx, e)
		if err != nil {
			return fmt.Errorf("failed to save draft: %w", err)
		}

		fmt.Printf("✓ Imported into draft %s (%s)\n", service.ShortID(draft.ID), draft.Number)
		printTotals(e)
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump [draft]",
	Short: "Write a draft's invoice record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := openDraft(ctx, args[0]); err != nil {
			return err
		}

		data, err := json.MarshalIndent(appInstance.Editor.Record(), "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("✓ Wrote %s\n", out)
		return nil
	},
}

func init() {
	importCmd.Flags().String("draft", "", "Merge into an existing draft instead of creating one")
	dumpCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}

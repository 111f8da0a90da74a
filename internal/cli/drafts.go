package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andy/invoicedesk/internal/export"
	"github.com/andy/invoicedesk/internal/service"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage saved drafts",
	Long:  `List, show, and delete saved invoice drafts.`,
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		drafts, err := appInstance.DraftService.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list drafts: %w", err)
		}

		if len(drafts) == 0 {
			fmt.Println("No drafts found")
			return nil
		}

		f := appInstance.Editor.Formatter()
		fmt.Printf("%-10s %-15s %-24s %14s %-16s\n", "ID", "Number", "Client", "Total", "Updated")
		fmt.Println("--------------------------------------------------------------------------------")
		for _, d := range drafts {
			client := d.ClientName
			if client == "" {
				client = "-"
			}
			fmt.Printf("%-10s %-15s %-24s %14s %-16s\n",
				service.ShortID(d.ID),
				truncate(d.Number, 15),
				truncate(client, 24),
				f.Format(d.Total),
				d.UpdatedAt.Local().Format("2006-01-02 15:04"),
			)
		}

		fmt.Printf("\nTotal: %d draft(s)\n", len(drafts))
		return nil
	},
}

var draftsShowCmd = &cobra.Command{
	Use:   "show [draft]",
	Short: "Print a draft as it would be printed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := openDraft(ctx, args[0]); err != nil {
			return err
		}

		e := appInstance.Editor
		cfg := e.Config()
		doc := &export.Document{
			Company:      appInstance.Config.Invoice.CompanyName,
			Invoice:      e.Invoice(),
			Totals:       e.Totals(),
			ItemsPerPage: cfg.ItemsPerPage,
			Formatter:    cfg.Formatter,
			Defaults:     e.ViewDefaults(),
		}

		out, err := export.NewTextRenderer().Render(ctx, doc)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

var draftsDeleteCmd = &cobra.Command{
	Use:   "delete [draft]",
	Short: "Delete a saved draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := appInstance.DraftService.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Delete draft %s (%s)?", service.ShortID(draft.ID), draft.Number)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.DraftService.Delete(ctx, draft.ID); err != nil {
			return fmt.Errorf("failed to delete draft: %w", err)
		}

		fmt.Printf("✓ Deleted draft %s\n", service.ShortID(draft.ID))
		return nil
	},
}

var draftsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete ALL saved drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if !confirmPrompt("This will delete ALL saved drafts. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		drafts, err := appInstance.DraftService.List(ctx)
		if err != nil {
			return err
		}
		for _, d := range drafts {
			if err := appInstance.DraftService.Delete(ctx, d.ID); err != nil {
				return fmt.Errorf("failed to delete draft %s: %w", service.ShortID(d.ID), err)
			}
		}

		fmt.Printf("Deleted %d draft(s).\n", len(drafts))
		return nil
	},
}

func init() {
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsShowCmd)
	draftsCmd.AddCommand(draftsDeleteCmd)
	draftsCmd.AddCommand(draftsClearCmd)

	draftsDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}

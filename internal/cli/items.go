package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/invoicedesk/internal/service"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage line items on a draft",
	Long: `Add, update, and remove line items. Rows are addressed by their
1-based position as shown by "drafts show".`,
}

var itemsAddCmd = &cobra.Command{
	Use:   "add [draft]",
	Short: "Append a line item",
	Long: `Append a line item to a draft.

Examples:
  invoicedesk items add INV-042 --desc "Logo design" --rate 1500 --qty 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := editDraft(ctx, args[0], func(e *service.Editor) error {
			id, err := e.AddRow()
			if err != nil {
				return err
			}
			return applyItemFlags(cmd, e, id)
		})
		if err != nil {
			return err
		}

		printSaved(draft)
		return nil
	},
}

var itemsSetCmd = &cobra.Command{
	Use:   "set [draft] [row]",
	Short: "Update a line item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := editDraft(ctx, args[0], func(e *service.Editor) error {
			id, err := rowID(e, args[1])
			if err != nil {
				return err
			}
			return applyItemFlags(cmd, e, id)
		})
		if err != nil {
			return err
		}

		printSaved(draft)
		return nil
	},
}

var itemsRemoveCmd = &cobra.Command{
	Use:   "remove [draft] [row]",
	Short: "Remove a line item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := editDraft(ctx, args[0], func(e *service.Editor) error {
			id, err := rowID(e, args[1])
			if err != nil {
				return err
			}
			return e.RemoveRow(id)
		})
		if err != nil {
			return err
		}

		printSaved(draft)
		return nil
	},
}

func addItemFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("desc", "d", "", "Description")
	cmd.Flags().StringP("rate", "r", "", "Unit rate")
	cmd.Flags().StringP("qty", "q", "", "Quantity")
}

func applyItemFlags(cmd *cobra.Command, e *service.Editor, id int) error {
	setters := []struct {
		flag string
		set  func(int, string) error
	}{
		{"desc", e.SetItemDescription},
		{"rate", e.SetItemRate},
		{"qty", e.SetItemQuantity},
	}

	var errs []error
	for _, s := range setters {
		if !cmd.Flags().Changed(s.flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(s.flag)
		if err := s.set(id, v); err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", s.flag, err))
		}
	}
	return errors.Join(errs...)
}

func init() {
	itemsCmd.AddCommand(itemsAddCmd)
	itemsCmd.AddCommand(itemsSetCmd)
	itemsCmd.AddCommand(itemsRemoveCmd)

	addItemFlags(itemsAddCmd)
	addItemFlags(itemsSetCmd)
}

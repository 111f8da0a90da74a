package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/service"
)

// editDraft opens a saved draft in edit mode, applies fn and saves the result
func editDraft(ctx context.Context, ref string, fn func(e *service.Editor) error) (*domain.Draft, error) {
	e := appInstance.Editor
	if err := openDraft(ctx, ref); err != nil {
		return nil, err
	}

	e.SetMode(domain.ModeEdit)
	if err := fn(e); err != nil {
		return nil, err
	}

	return appInstance.DraftService.Save(ctx, e)
}

// openDraft loads a draft into the editor. Fields that failed to load are
// reported but do not stop the command.
func openDraft(ctx context.Context, ref string) error {
	draft, err := appInstance.DraftService.Open(ctx, ref, appInstance.Editor)
	if draft == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return nil
}

// rowID maps a 1-based row position to the row's ID
func rowID(e *service.Editor, position string) (int, error) {
	n, err := strconv.Atoi(position)
	if err != nil {
		return 0, fmt.Errorf("invalid row number %q", position)
	}
	items := e.Invoice().Items
	if n < 1 || n > len(items) {
		return 0, fmt.Errorf("row %d out of range (1-%d)", n, len(items))
	}
	return items[n-1].ID, nil
}

func printTotals(e *service.Editor) {
	f := e.Formatter()
	t := e.Totals()
	inv := e.Invoice()

	fmt.Printf("  Subtotal:    %s\n", f.Format(t.Subtotal))
	if inv.TaxEnabled {
		fmt.Printf("  Tax (%s%%):   %s\n", inv.TaxRate.String(), f.Format(t.TaxAmount))
	}
	fmt.Printf("  Total:       %s\n", f.Format(t.Total))
	fmt.Printf("  Balance Due: %s\n", f.Format(t.BalanceDue))
	fmt.Printf("  Pages:       %d\n", len(e.Pages()))
}

func printSaved(draft *domain.Draft) {
	fmt.Printf("✓ Saved draft %s (%s)\n", service.ShortID(draft.ID), draft.Number)
	printTotals(appInstance.Editor)
}

// truncate truncates a string to maxLen runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

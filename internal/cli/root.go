package cli

import (
	"github.com/andy/invoicedesk/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "invoicedesk",
	Short: "A terminal invoice editor",
	Long: `Invoicedesk edits invoices with live totals, paginates them for print,
and exports them as PDF or plain text.

By default, running invoicedesk without arguments launches the interactive TUI.
Use subcommands to edit saved drafts from scripts.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(signatureCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(tuiCmd)
}

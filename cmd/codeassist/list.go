package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List managed tools and their install state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(app.registry.Names()))

			for _, tool := range app.registry.All() {
				state := "not installed"
				installed, err := tool.CheckInstalled()
				if err != nil {
					state = "unknown"
				} else if installed {
					state = "installed"
				}

				version, source, installedAt := "", "", ""
				if app.receipts != nil {
					if receipt, err := app.receipts.Get(cmd.Context(), tool.Name()); err == nil && receipt != nil {
						version = receipt.Version
						source = receipt.Source
						installedAt = receipt.InstalledAt.Local().Format("2006-01-02 15:04")
					}
				}

				rows = append(rows, []string{tool.Name(), state, version, source, installedAt})
			}

			app.printer.PrintTable(
				[]string{"TOOL", "STATE", "VERSION", "SOURCE", "INSTALLED"},
				rows,
			)
			return nil
		},
	}
}

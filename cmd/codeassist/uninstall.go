package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUninstallCmd(app *application) *cobra.Command {
	var toolName string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove an installed tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := app.tool(toolName)
			if err != nil {
				return err
			}

			if !app.yes {
				if !confirm(fmt.Sprintf("Uninstall %s", tool.DisplayName())) {
					app.console.WriteLine("Uninstall cancelled")
					return nil
				}
			}

			if err := tool.Uninstall(cmd.Context()); err != nil {
				return err
			}
			app.console.Success("%s uninstalled", tool.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&toolName, "tool", defaultTool, "tool to uninstall")
	return cmd
}

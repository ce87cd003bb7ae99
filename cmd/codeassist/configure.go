package main

import (
	"github.com/spf13/cobra"
)

func newConfigureCmd(app *application) *cobra.Command {
	var toolName string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Deploy enterprise configuration without installing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := app.tool(toolName)
			if err != nil {
				return err
			}

			if err := tool.Configure(cmd.Context()); err != nil {
				return err
			}
			app.console.Success("%s configured", tool.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&toolName, "tool", defaultTool, "tool to configure")
	return cmd
}

package main

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"codeassist/internal/tools"
	"codeassist/internal/version"
)

func newInstallCmd(app *application) *cobra.Command {
	var toolName string

	cmd := &cobra.Command{
		Use:   "install [target]",
		Short: "Download, verify, and install a tool release",
		Long: "Installs the requested release. The target is a release channel " +
			"(stable, latest) or a concrete version such as 2.0.1; it defaults to latest.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := version.DefaultTarget
			if len(args) == 1 {
				target = args[0]
			}
			if err := version.ValidateTarget(target); err != nil {
				return err
			}

			tool, err := app.tool(toolName)
			if err != nil {
				return err
			}

			if !app.yes {
				if !confirm(fmt.Sprintf("Install %s (%s)", tool.DisplayName(), target)) {
					app.console.WriteLine("Installation cancelled")
					return nil
				}
			}

			return tool.Install(cmd.Context(), tools.InstallOptions{Target: target})
		},
	}

	cmd.Flags().StringVar(&toolName, "tool", defaultTool, "tool to install")
	return cmd
}

// confirm asks a yes/no question; abort and decline both return false.
func confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"codeassist/internal/prereq"
	"codeassist/internal/ui"
)

func newCheckCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that required prerequisites are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := prereq.NewChecker().CheckAll()

			for _, result := range results {
				status := ui.StatusMissing
				if result.Present {
					status = ui.StatusPresent
				}
				app.printer.PrintCheckStatus(result.Name, status, result.Detail)
			}

			if prereq.AllPresent(results) {
				app.console.Success("All prerequisites are installed")
				return nil
			}

			app.console.WriteLine("")
			for _, result := range results {
				if !result.Present {
					app.console.WriteLine("%s: %s", result.Name, result.Instructions)
				}
			}
			return errors.New("one or more prerequisites are missing")
		},
	}
}

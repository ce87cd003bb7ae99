package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codeassist/internal/config"
	"codeassist/internal/configurator"
	apperrors "codeassist/internal/errors"
	"codeassist/internal/fetch"
	"codeassist/internal/logger"
	"codeassist/internal/platform"
	"codeassist/internal/store"
	"codeassist/internal/tools"
	"codeassist/internal/ui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const defaultTool = "assist-cli"

// application holds the wired collaborators shared by all subcommands.
type application struct {
	yes     bool
	verbose bool

	cfg      *config.Config
	log      *logger.ColoredLogger
	console  *ui.Console
	printer  *ui.Printer
	paths    platform.Paths
	registry *tools.Registry
	receipts *store.Store
}

func run(args []string) int {
	app := &application{}

	root := newRootCmd(app)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		app.reportError(err)
		return exitCode(err)
	}

	app.close()
	return 0
}

func newRootCmd(app *application) *cobra.Command {
	root := &cobra.Command{
		Use:           "codeassist",
		Short:         "Enterprise installer for the Assist CLI coding assistant",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.PersistentFlags().BoolVarP(&app.yes, "yes", "y", false, "answer yes to all prompts")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug output")

	root.AddCommand(
		newCheckCmd(app),
		newInstallCmd(app),
		newUninstallCmd(app),
		newConfigureCmd(app),
		newListCmd(app),
	)

	return root
}

// init wires the collaborator graph once flags are parsed.
func (app *application) init() error {
	if app.cfg != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app.cfg = cfg

	level := logger.LevelInfo
	if app.verbose {
		level = logger.LevelDebug
	}
	app.log = logger.NewColoredLogger(logger.WithLevel(level))
	app.console = ui.NewConsole(app.log, os.Stdout)
	app.printer = ui.NewPrinter(os.Stdout)

	paths, err := platform.NewPaths()
	if err != nil {
		return err
	}
	app.paths = paths

	fetcher := fetch.NewFetcher(cfg, "assist", fetch.WithLogger(app.log))
	deployer := configurator.NewDeployer(bundleDir(), paths, platform.NewEnvWriter(), app.log)

	// Receipt bookkeeping is best-effort; a broken database never blocks
	// install or uninstall.
	receipts, err := store.Open(context.Background(), paths.ToolConfigDir)
	if err != nil {
		app.log.Warn("Install receipts unavailable: %v", err)
	} else {
		app.receipts = receipts
	}

	app.registry = tools.NewRegistry()
	app.registry.Register(tools.NewAssistCLI(tools.AssistDeps{
		Fetcher:  fetcher,
		Deployer: deployer,
		Receipts: app.receipts,
		Paths:    paths,
		Console:  app.console,
		Log:      app.log,
	}))

	return nil
}

func (app *application) close() {
	if app.receipts != nil {
		app.receipts.Close()
	}
}

func (app *application) tool(name string) (tools.Tool, error) {
	return app.registry.Get(name)
}

func (app *application) reportError(err error) {
	if appErr, ok := apperrors.As(err); ok && app.log != nil {
		app.log.ErrorWithAppError("Command failed", appErr)
		return
	}
	if app.log != nil {
		app.log.Error("Command failed: %v", err)
		return
	}
	os.Stderr.WriteString("Error: " + err.Error() + "\n")
}

// exitCode propagates the installer subprocess exit status when it was the
// failing step; everything else exits 1.
func exitCode(err error) int {
	if appErr, ok := apperrors.As(err); ok && appErr.Code == apperrors.CodeSubprocess {
		if code, ok := appErr.Metadata["exit_code"].(int); ok && code > 0 {
			return code
		}
	}
	return 1
}

// bundleDir is where enterprise configuration ships: a config directory
// beside the installer executable, else one under the working directory.
func bundleDir() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "config")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return "config"
}

package tools

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"codeassist/internal/app"
	"codeassist/internal/configurator"
	"codeassist/internal/fetch"
	"codeassist/internal/logger"
	"codeassist/internal/platform"
	"codeassist/internal/store"
	"codeassist/internal/ui"
)

const (
	assistToolName    = "assist-cli"
	assistDisplayName = "Assist CLI"

	// assistBinary is the base name published in the distribution bucket.
	assistBinary = "assist"
)

// AssistDeps wires the collaborators the Assist CLI tool needs.
type AssistDeps struct {
	Fetcher  *fetch.Fetcher
	Deployer *configurator.Deployer

	// Receipts may be nil; receipt bookkeeping is best-effort.
	Receipts *store.Store

	Paths   platform.Paths
	Console *ui.Console
	Log     logger.Logger
}

// AssistCLI manages the coding-assistant CLI tool.
type AssistCLI struct {
	deps AssistDeps
}

// NewAssistCLI constructs the Assist CLI tool.
func NewAssistCLI(deps AssistDeps) *AssistCLI {
	return &AssistCLI{deps: deps}
}

func (a *AssistCLI) Name() string        { return assistToolName }
func (a *AssistCLI) DisplayName() string { return assistDisplayName }

// installedBinaryPath is where the installer subprocess places the tool.
func (a *AssistCLI) installedBinaryPath() string {
	return filepath.Join(a.deps.Paths.BinDir, platform.BinaryName(assistBinary))
}

// CheckInstalled reports whether the managed binary is present.
func (a *AssistCLI) CheckInstalled() (bool, error) {
	_, err := os.Stat(a.installedBinaryPath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Install drives the full acquisition pipeline: resolve, manifest, platform
// selection, download with verification, installer execution, then the
// configuration collaborators. The installer binary receives the originally
// requested target, not the resolved version.
func (a *AssistCLI) Install(ctx context.Context, opts InstallOptions) error {
	var (
		resolved fetch.ResolvedVersion
		manifest *fetch.Manifest
		key      string
		entry    fetch.ChecksumEntry
		artifact *fetch.Artifact
	)

	stages := []app.Stage{
		{Name: app.StageResolveVersion, Fn: func(ctx context.Context) error {
			var err error
			resolved, err = a.deps.Fetcher.ResolveVersion(ctx, opts.Target)
			return err
		}},
		{Name: app.StageFetchManifest, Fn: func(ctx context.Context) error {
			var err error
			manifest, _, err = a.deps.Fetcher.FetchManifest(ctx, resolved.Version)
			return err
		}},
		{Name: app.StageSelectPlatform, Fn: func(ctx context.Context) error {
			var err error
			key, err = platform.Key()
			if err != nil {
				return err
			}
			entry, err = manifest.PlatformEntry(key)
			return err
		}},
		{Name: app.StageDownload, Fn: func(ctx context.Context) error {
			var err error
			artifact, err = a.deps.Fetcher.DownloadAndVerify(ctx, resolved.Version, key, entry)
			return err
		}},
		{Name: app.StageRunInstaller, Fn: func(ctx context.Context) error {
			return a.deps.Fetcher.RunInstaller(ctx, artifact, opts.Target)
		}},
		{Name: app.StageConfigure, Fn: func(ctx context.Context) error {
			return a.deps.Deployer.DeployAll()
		}},
	}

	pipeline := app.NewPipeline(a.deps.Console, a.deps.Log, stages)
	if err := pipeline.Run(ctx); err != nil {
		return err
	}

	a.recordReceipt(ctx, resolved.Version, artifact.Source.String())
	a.deps.Console.Success("%s %s installed", assistDisplayName, resolved.Version)
	return nil
}

// recordReceipt is best-effort; a receipt failure never fails the install.
func (a *AssistCLI) recordReceipt(ctx context.Context, version, source string) {
	if a.deps.Receipts == nil {
		return
	}
	err := a.deps.Receipts.Record(ctx, store.Receipt{
		Tool:        assistToolName,
		Version:     version,
		Source:      source,
		InstalledAt: time.Now().UTC(),
	})
	if err != nil {
		a.deps.Log.Warn("Failed to record install receipt: %v", err)
	}
}

// Uninstall asks the installed binary to remove itself and falls back to
// cleaning the managed bin directory when it cannot.
func (a *AssistCLI) Uninstall(ctx context.Context) error {
	binary := a.installedBinaryPath()

	installed, err := a.CheckInstalled()
	if err != nil {
		return err
	}

	if installed {
		cmd := exec.CommandContext(ctx, binary, "uninstall")
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			a.deps.Log.Warn("Installed binary could not uninstall itself, removing manually: %v", err)
			if err := os.Remove(binary); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	} else {
		a.deps.Log.Info("%s is not installed", assistDisplayName)
	}

	if a.deps.Receipts != nil {
		if err := a.deps.Receipts.Remove(ctx, assistToolName); err != nil {
			a.deps.Log.Warn("Failed to remove install receipt: %v", err)
		}
	}

	return nil
}

// Configure runs only the configuration deployment collaborators.
func (a *AssistCLI) Configure(ctx context.Context) error {
	return a.deps.Deployer.DeployAll()
}

var _ Tool = (*AssistCLI)(nil)

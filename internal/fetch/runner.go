package fetch

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	apperrors "codeassist/internal/errors"
)

const installCommand = "install"

// RunInstaller executes the verified artifact as the platform installer,
// passing the originally requested target so the binary performs its own
// final resolution. Stdio is inherited so installer prompts reach the user,
// and interrupt signals are forwarded to the child. The artifact is removed
// afterwards whether the run succeeded or not; a failed removal is only a
// warning.
func (f *Fetcher) RunInstaller(ctx context.Context, artifact *Artifact, target string) error {
	defer func() {
		if err := os.Remove(artifact.Path); err != nil && !os.IsNotExist(err) {
			f.log.Warn("Failed to remove installer binary %s: %v", artifact.Path, err)
		}
	}()

	cmd := exec.CommandContext(ctx, artifact.Path, installCommand, target)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return apperrors.SystemError(apperrors.CodeSystemGeneric,
			"failed to start installer subprocess", err).
			WithField("path", artifact.Path)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)
	signal.Stop(signals)

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return apperrors.SubprocessError(exitErr.ExitCode(), err)
		}
		return apperrors.SubprocessError(-1, err)
	}

	return nil
}

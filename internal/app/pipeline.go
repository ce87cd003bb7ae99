// Package app sequences the install pipeline: a named stage table executed
// in order, failing fast, with each failure naming the stage that produced it.
package app

import (
	"context"

	apperrors "codeassist/internal/errors"
	"codeassist/internal/logger"
	"codeassist/internal/ui"
)

// Stage names shared between the pipeline and error reporting.
const (
	StageResolveVersion = "resolve version"
	StageFetchManifest  = "fetch manifest"
	StageSelectPlatform = "select platform"
	StageDownload       = "download and verify"
	StageRunInstaller   = "run installer"
	StageConfigure      = "configure"
)

// Stage describes a single pipeline phase.
type Stage struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Pipeline executes stages sequentially, stopping at the first failure.
type Pipeline struct {
	stages  []Stage
	console *ui.Console
	logger  logger.Logger
}

// NewPipeline constructs a pipeline over the given stage table.
func NewPipeline(console *ui.Console, log logger.Logger, stages []Stage) *Pipeline {
	return &Pipeline{
		stages:  stages,
		console: console,
		logger:  log,
	}
}

// Run drives the stage table. The returned error carries the name of the
// stage that failed as its operation.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return apperrors.SystemError(apperrors.CodeSystemGeneric,
				"installation cancelled", err).WithOperation(stage.Name)
		}

		if p.logger != nil {
			p.logger.Debug("Executing stage: %s", stage.Name)
		}
		if p.console != nil {
			p.console.StartProgress(stage.Name)
		}

		if err := stage.Fn(ctx); err != nil {
			return stageError(stage.Name, err)
		}

		if p.console != nil {
			p.console.StopProgress(stage.Name)
		}
	}

	return nil
}

func stageError(stage string, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Operation == "" {
			return appErr.WithOperation(stage)
		}
		return appErr
	}
	return apperrors.SystemError(apperrors.CodeSystemGeneric, stage+" failed", err).
		WithOperation(stage)
}

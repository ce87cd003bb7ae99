package app

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "codeassist/internal/errors"
)

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var ran []string
	stages := []Stage{
		{Name: StageResolveVersion, Fn: func(context.Context) error {
			ran = append(ran, StageResolveVersion)
			return nil
		}},
		{Name: StageFetchManifest, Fn: func(context.Context) error {
			ran = append(ran, StageFetchManifest)
			return nil
		}},
	}

	p := NewPipeline(nil, nil, stages)
	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, []string{StageResolveVersion, StageFetchManifest}, ran)
}

func TestPipelineFailsFast(t *testing.T) {
	reached := false
	stages := []Stage{
		{Name: StageDownload, Fn: func(context.Context) error {
			return apperrors.DownloadError("binary unavailable", nil)
		}},
		{Name: StageRunInstaller, Fn: func(context.Context) error {
			reached = true
			return nil
		}},
	}

	p := NewPipeline(nil, nil, stages)
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.False(t, reached, "stages after a failure must not run")

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, StageDownload, appErr.Operation)
}

func TestPipelineWrapsPlainErrors(t *testing.T) {
	stages := []Stage{
		{Name: StageConfigure, Fn: func(context.Context) error {
			return errors.New("disk full")
		}},
	}

	p := NewPipeline(nil, nil, stages)
	err := p.Run(context.Background())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, StageConfigure, appErr.Operation)
	assert.Contains(t, appErr.Error(), "disk full")
}

func TestPipelineHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	p := NewPipeline(nil, nil, []Stage{
		{Name: StageResolveVersion, Fn: func(context.Context) error {
			ran = true
			return nil
		}},
	})

	err := p.Run(ctx)
	require.Error(t, err)
	assert.False(t, ran)
}

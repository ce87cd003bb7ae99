package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name string
}

func (s stubTool) Name() string                                { return s.name }
func (s stubTool) DisplayName() string                         { return s.name }
func (s stubTool) CheckInstalled() (bool, error)               { return false, nil }
func (s stubTool) Install(context.Context, InstallOptions) error { return nil }
func (s stubTool) Uninstall(context.Context) error             { return nil }
func (s stubTool) Configure(context.Context) error             { return nil }

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{name: "assist-cli"})

	tool, err := r.Get("assist-cli")
	require.NoError(t, err)
	assert.Equal(t, "assist-cli", tool.Name())
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{name: "assist-cli"})

	_, err := r.Get("mystery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list")
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{name: "zeta"})
	r.Register(stubTool{name: "alpha"})

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
	assert.Equal(t, "alpha, zeta", r.String())
}

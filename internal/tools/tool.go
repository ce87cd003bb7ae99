// Package tools defines the managed-tool capability set and the registry
// the CLI dispatches through. Each tool knows how to check, install,
// uninstall, and configure itself; the CLI never branches on tool identity.
package tools

import (
	"context"
	"sort"
	"strings"

	apperrors "codeassist/internal/errors"
)

// InstallOptions carries per-invocation install parameters.
type InstallOptions struct {
	// Target is the requested version: a channel or a concrete version.
	Target string
}

// Tool is one managed tool.
type Tool interface {
	// Name is the stable registry identifier, e.g. "assist-cli".
	Name() string

	// DisplayName is the human-readable name shown in output.
	DisplayName() string

	// CheckInstalled reports whether the tool is currently installed.
	CheckInstalled() (bool, error)

	Install(ctx context.Context, opts InstallOptions) error
	Uninstall(ctx context.Context) error
	Configure(ctx context.Context) error
}

// Registry holds the known tools keyed by name.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Later registrations replace earlier ones.
func (r *Registry) Register(tool Tool) {
	r.tools[tool.Name()] = tool
}

// Get returns the tool with the given name.
func (r *Registry) Get(name string) (Tool, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, apperrors.ValidationError(apperrors.CodeValidationGeneric,
			"unknown tool "+name+", run 'codeassist list' to see available tools", nil).
			WithField("tool", name)
	}
	return tool, nil
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered tools ordered by name.
func (r *Registry) All() []Tool {
	names := r.Names()
	all := make([]Tool, 0, len(names))
	for _, name := range names {
		all = append(all, r.tools[name])
	}
	return all
}

// String lists the registered names for error messages.
func (r *Registry) String() string {
	return strings.Join(r.Names(), ", ")
}

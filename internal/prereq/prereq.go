// Package prereq verifies that the machine carries what the installed tool
// depends on: the supported editor and a git client. Checks only observe;
// installation guidance is printed, never acted on.
package prereq

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Result is the outcome of one prerequisite check.
type Result struct {
	// Name identifies the prerequisite, e.g. "Visual Studio Code".
	Name string

	// Present reports whether the prerequisite was found.
	Present bool

	// Detail carries the detected version or location when present.
	Detail string

	// Instructions tells the user how to install a missing prerequisite.
	Instructions string
}

// Checker runs the prerequisite checks. The probe functions are injectable
// so tests can simulate any machine.
type Checker struct {
	goos       string
	lookPath   func(name string) (string, error)
	statPath   func(path string) bool
	runVersion func(name string, args ...string) (string, error)
}

// NewChecker builds a Checker probing the real system.
func NewChecker() *Checker {
	return &Checker{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		statPath: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		runVersion: func(name string, args ...string) (string, error) {
			out, err := exec.Command(name, args...).Output()
			return strings.TrimSpace(string(out)), err
		},
	}
}

// CheckAll runs every prerequisite check.
func (c *Checker) CheckAll() []Result {
	return []Result{
		c.CheckEditor(),
		c.CheckGit(),
	}
}

// AllPresent reports whether every result is satisfied.
func AllPresent(results []Result) bool {
	for _, r := range results {
		if !r.Present {
			return false
		}
	}
	return true
}

// CheckEditor looks for Visual Studio Code: well-known install locations
// first, then the `code` launcher on PATH.
func (c *Checker) CheckEditor() Result {
	result := Result{
		Name:         "Visual Studio Code",
		Instructions: editorInstructions(c.goos),
	}

	for _, path := range c.editorPaths() {
		if c.statPath(path) {
			result.Present = true
			result.Detail = path
			break
		}
	}

	if out, err := c.runVersion("code", "--version"); err == nil {
		result.Present = true
		if lines := strings.SplitN(out, "\n", 2); len(lines) > 0 && lines[0] != "" {
			result.Detail = lines[0]
		}
	}

	return result
}

// CheckGit looks for a git client on PATH.
func (c *Checker) CheckGit() Result {
	result := Result{
		Name:         "git",
		Instructions: gitInstructions(c.goos),
	}

	if _, err := c.lookPath("git"); err != nil {
		return result
	}
	result.Present = true

	if out, err := c.runVersion("git", "--version"); err == nil {
		result.Detail = strings.TrimPrefix(out, "git version ")
	}

	return result
}

func (c *Checker) editorPaths() []string {
	switch c.goos {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		programFiles := os.Getenv("ProgramFiles")
		var paths []string
		if localAppData != "" {
			paths = append(paths, filepath.Join(localAppData, "Programs", "Microsoft VS Code", "Code.exe"))
		}
		if programFiles != "" {
			paths = append(paths, filepath.Join(programFiles, "Microsoft VS Code", "Code.exe"))
		}
		return paths
	case "darwin":
		return []string{"/Applications/Visual Studio Code.app"}
	default:
		return []string{"/usr/share/code/code", "/snap/bin/code"}
	}
}

func editorInstructions(goos string) string {
	switch goos {
	case "windows":
		return "Install from https://code.visualstudio.com/ or run: winget install Microsoft.VisualStudioCode"
	case "darwin":
		return "Install from https://code.visualstudio.com/ or run: brew install --cask visual-studio-code"
	default:
		return "Install from https://code.visualstudio.com/ or use your distribution's package manager"
	}
}

func gitInstructions(goos string) string {
	switch goos {
	case "windows":
		return "Install from https://git-scm.com/ or run: winget install Git.Git"
	case "darwin":
		return "Run: xcode-select --install, or: brew install git"
	default:
		return "Run: sudo apt install git (or your distribution's equivalent)"
	}
}

package prereq

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func testChecker(goos string) *Checker {
	return &Checker{
		goos:     goos,
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
		statPath: func(string) bool { return false },
		runVersion: func(string, ...string) (string, error) {
			return "", errors.New("not found")
		},
	}
}

func TestCheckEditorViaWellKnownPath(t *testing.T) {
	c := testChecker("darwin")
	c.statPath = func(path string) bool {
		return path == "/Applications/Visual Studio Code.app"
	}

	result := c.CheckEditor()
	assert.True(t, result.Present)
	assert.Equal(t, "/Applications/Visual Studio Code.app", result.Detail)
}

func TestCheckEditorViaLauncher(t *testing.T) {
	c := testChecker("linux")
	c.runVersion = func(name string, args ...string) (string, error) {
		if name == "code" {
			return "1.92.0\nabcdef\nx64", nil
		}
		return "", errors.New("not found")
	}

	result := c.CheckEditor()
	assert.True(t, result.Present)
	assert.Equal(t, "1.92.0", result.Detail)
}

func TestCheckEditorMissing(t *testing.T) {
	result := testChecker("linux").CheckEditor()
	assert.False(t, result.Present)
	assert.NotEmpty(t, result.Instructions)
}

func TestCheckGit(t *testing.T) {
	c := testChecker("linux")
	c.lookPath = func(name string) (string, error) { return "/usr/bin/git", nil }
	c.runVersion = func(name string, args ...string) (string, error) {
		return "git version 2.45.2", nil
	}

	result := c.CheckGit()
	assert.True(t, result.Present)
	assert.Equal(t, "2.45.2", result.Detail)
}

func TestCheckGitMissing(t *testing.T) {
	result := testChecker("windows").CheckGit()
	assert.False(t, result.Present)
	assert.Contains(t, result.Instructions, "winget")
}

func TestAllPresent(t *testing.T) {
	assert.True(t, AllPresent([]Result{{Present: true}, {Present: true}}))
	assert.False(t, AllPresent([]Result{{Present: true}, {Present: false}}))
	assert.True(t, AllPresent(nil))
}

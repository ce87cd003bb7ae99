package tools

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeassist/internal/config"
	"codeassist/internal/configurator"
	"codeassist/internal/fetch"
	"codeassist/internal/logger"
	"codeassist/internal/platform"
	"codeassist/internal/store"
	"codeassist/internal/ui"
)

type fakeEnvWriter struct{}

func (fakeEnvWriter) Apply(platform.EnvSnapshot) (platform.EnvResult, error) {
	return platform.EnvResult{}, nil
}

func TestAssistInstallEndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	key, err := platform.Key()
	require.NoError(t, err)

	argsFile := filepath.Join(t.TempDir(), "args")
	installer := []byte("#!/bin/sh\necho \"$@\" > " + argsFile + "\n")
	checksum := fmt.Sprintf("%x", sha256.Sum256(installer))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/latest":
			fmt.Fprint(w, "2.0.1\n")
		case "/2.0.1/manifest.json":
			fmt.Fprintf(w, `{"platforms":{"%s":{"checksum":"%s"}}}`, key, checksum)
		case "/2.0.1/" + key + "/assist":
			w.Write(installer)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := &config.Config{
		BaseURL:     srv.URL,
		LocalDir:    t.TempDir(),
		CacheDir:    t.TempDir(),
		HTTPTimeout: 5 * time.Second,
	}

	home := t.TempDir()
	paths := platform.Paths{
		HomeDir:           home,
		ToolConfigDir:     filepath.Join(home, ".assist"),
		BinDir:            filepath.Join(home, ".assist", "bin"),
		EditorSettingsDir: filepath.Join(home, "editor"),
		CertsDir:          filepath.Join(home, "certs"),
	}

	log := logger.NewStandardLogger(logger.WithLevel(logger.LevelError))
	var out bytes.Buffer
	console := ui.NewConsole(log, &out)

	receipts, err := store.Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	defer receipts.Close()

	tool := NewAssistCLI(AssistDeps{
		Fetcher:  fetch.NewFetcher(cfg, "assist", fetch.WithLogger(log)),
		Deployer: configurator.NewDeployer(t.TempDir(), paths, fakeEnvWriter{}, log),
		Receipts: receipts,
		Paths:    paths,
		Console:  console,
		Log:      log,
	})

	require.NoError(t, tool.Install(context.Background(), InstallOptions{Target: "latest"}))

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "install latest\n", string(args),
		"installer receives the original target, not the resolved version")

	entries, err := os.ReadDir(cfg.CacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "installer binary is cleaned up after the run")

	receipt, err := receipts.Get(context.Background(), "assist-cli")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "2.0.1", receipt.Version)
	assert.Equal(t, "remote", receipt.Source)
}

func TestAssistInstallFailsBeforeInstallerOnBadChecksum(t *testing.T) {
	key, err := platform.Key()
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/latest":
			fmt.Fprint(w, "2.0.1")
		case "/2.0.1/manifest.json":
			fmt.Fprintf(w, `{"platforms":{"%s":{"checksum":"%s"}}}`, key, "00ff00ff")
		default:
			w.Write([]byte("binary payload"))
		}
	}))
	defer srv.Close()

	cfg := &config.Config{
		BaseURL:     srv.URL,
		LocalDir:    t.TempDir(),
		CacheDir:    t.TempDir(),
		HTTPTimeout: 5 * time.Second,
	}

	home := t.TempDir()
	paths := platform.Paths{
		HomeDir:       home,
		ToolConfigDir: filepath.Join(home, ".assist"),
		BinDir:        filepath.Join(home, ".assist", "bin"),
	}
	log := logger.NewStandardLogger(logger.WithLevel(logger.LevelError))

	tool := NewAssistCLI(AssistDeps{
		Fetcher:  fetch.NewFetcher(cfg, "assist", fetch.WithLogger(log)),
		Deployer: configurator.NewDeployer(t.TempDir(), paths, fakeEnvWriter{}, log),
		Paths:    paths,
		Console:  ui.NewConsole(log, &bytes.Buffer{}),
		Log:      log,
	})

	err = tool.Install(context.Background(), InstallOptions{Target: "latest"})
	require.Error(t, err)

	entries, readErr := os.ReadDir(cfg.CacheDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no unverified binary may remain")
}

func TestCheckInstalled(t *testing.T) {
	home := t.TempDir()
	paths := platform.Paths{
		HomeDir:       home,
		ToolConfigDir: filepath.Join(home, ".assist"),
		BinDir:        filepath.Join(home, ".assist", "bin"),
	}
	log := logger.NewStandardLogger(logger.WithLevel(logger.LevelError))

	tool := NewAssistCLI(AssistDeps{
		Paths:   paths,
		Console: ui.NewConsole(log, &bytes.Buffer{}),
		Log:     log,
	})

	installed, err := tool.CheckInstalled()
	require.NoError(t, err)
	assert.False(t, installed)

	require.NoError(t, os.MkdirAll(paths.BinDir, 0o755))
	require.NoError(t, os.WriteFile(tool.installedBinaryPath(), []byte("bin"), 0o755))

	installed, err = tool.CheckInstalled()
	require.NoError(t, err)
	assert.True(t, installed)
}

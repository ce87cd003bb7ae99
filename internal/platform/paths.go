package platform

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// Paths collects the per-OS directories touched during installation and
// configuration. Resolved once at startup; callers never branch on GOOS.
type Paths struct {
	HomeDir string

	// ToolConfigDir holds the tool's own settings (~/.assist).
	ToolConfigDir string

	// BinDir receives the installed tool binary.
	BinDir string

	// EditorSettingsDir is the user settings directory of the supported editor.
	EditorSettingsDir string

	// CertsDir receives deployed enterprise TLS root certificates.
	CertsDir string
}

// NewPaths resolves the directory layout for the running OS.
func NewPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, errors.Wrap(err, "failed to determine home directory")
	}
	return pathsFor(runtime.GOOS, home), nil
}

func pathsFor(goos, home string) Paths {
	p := Paths{
		HomeDir:       home,
		ToolConfigDir: filepath.Join(home, ".assist"),
	}
	p.BinDir = filepath.Join(p.ToolConfigDir, "bin")

	switch goos {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		p.EditorSettingsDir = filepath.Join(appData, "Code", "User")
		p.CertsDir = filepath.Join(home, ".continue", "certs")
	case "darwin":
		p.EditorSettingsDir = filepath.Join(home, "Library", "Application Support", "Code", "User")
		p.CertsDir = filepath.Join(home, "certs")
	default:
		p.EditorSettingsDir = filepath.Join(home, ".config", "Code", "User")
		p.CertsDir = filepath.Join(home, "certs")
	}

	return p
}

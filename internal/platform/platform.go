// Package platform answers the per-OS questions the installer has: which
// manifest key identifies this machine, where configuration lives, and how
// user environment variables are registered.
package platform

import (
	"runtime"

	apperrors "codeassist/internal/errors"
)

// Platform keys published in release manifests.
const (
	KeyWindowsX64 = "win32-x64"
	KeyDarwinX64  = "darwin-x64"
	KeyDarwinARM  = "darwin-arm64"

	// KeyLinuxX64 exists for development machines; production releases only
	// cover Windows and macOS.
	KeyLinuxX64 = "linux-x64"
)

// Key returns the manifest platform key for the running machine.
func Key() (string, error) {
	return keyFor(runtime.GOOS, runtime.GOARCH)
}

// keyFor maps a GOOS/GOARCH pair to a manifest key. Unknown combinations are
// an error, never a guess.
func keyFor(goos, goarch string) (string, error) {
	switch {
	case goos == "windows" && goarch == "amd64":
		return KeyWindowsX64, nil
	case goos == "darwin" && goarch == "amd64":
		return KeyDarwinX64, nil
	case goos == "darwin" && goarch == "arm64":
		return KeyDarwinARM, nil
	case goos == "linux" && goarch == "amd64":
		return KeyLinuxX64, nil
	default:
		return "", apperrors.SystemError(apperrors.CodeSystemGeneric,
			"unsupported platform", nil).
			WithFields(apperrors.Metadata{"goos": goos, "goarch": goarch})
	}
}

// BinaryName returns the release binary filename for a tool on this platform.
func BinaryName(tool string) string {
	return binaryNameFor(tool, runtime.GOOS)
}

func binaryNameFor(tool, goos string) string {
	if goos == "windows" {
		return tool + ".exe"
	}
	return tool
}

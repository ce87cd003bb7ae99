//go:build darwin

package platform

import (
	"os/exec"
	"sort"

	"github.com/pkg/errors"
)

// launchctlEnvWriter registers variables with launchd so GUI applications
// started from the Dock see them. PATH entries are reported back to the
// caller instead of written: shell profiles stay untouched.
type launchctlEnvWriter struct{}

func newEnvWriter() EnvWriter {
	return &launchctlEnvWriter{}
}

func (w *launchctlEnvWriter) Apply(snapshot EnvSnapshot) (EnvResult, error) {
	var result EnvResult

	names := make([]string, 0, len(snapshot.Vars))
	for name := range snapshot.Vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := exec.Command("launchctl", "setenv", name, snapshot.Vars[name])
		if out, err := cmd.CombinedOutput(); err != nil {
			return result, errors.Wrapf(err, "launchctl setenv %s failed: %s", name, out)
		}
		result.applied(name)
	}

	for _, entry := range snapshot.PathEntries {
		result.skipped(entry, "add to PATH in your shell profile")
	}

	return result, nil
}

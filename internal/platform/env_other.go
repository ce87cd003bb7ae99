//go:build !windows && !darwin

package platform

// noopEnvWriter reports every entry as skipped. There is no portable
// user-scoped environment store on this OS family, and shell profiles
// stay untouched.
type noopEnvWriter struct{}

func newEnvWriter() EnvWriter {
	return &noopEnvWriter{}
}

func (w *noopEnvWriter) Apply(snapshot EnvSnapshot) (EnvResult, error) {
	var result EnvResult
	for name := range snapshot.Vars {
		result.skipped(name, "set in your shell profile")
	}
	for _, entry := range snapshot.PathEntries {
		result.skipped(entry, "add to PATH in your shell profile")
	}
	return result, nil
}

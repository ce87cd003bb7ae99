package platform

// EnvSnapshot is an immutable description of the desired user environment.
// Writers consume the snapshot and report what they did; nothing mutates
// ambient process state.
type EnvSnapshot struct {
	// Vars are user-scoped environment variables to set.
	Vars map[string]string

	// PathEntries are directories that should be present on the user PATH.
	PathEntries []string
}

// EnvResult reports the outcome of applying a snapshot.
type EnvResult struct {
	// Applied lists variable names and PATH entries that were written.
	Applied []string

	// Skipped maps entries that were not written to a human-readable reason.
	Skipped map[string]string
}

func (r *EnvResult) applied(name string) {
	r.Applied = append(r.Applied, name)
}

func (r *EnvResult) skipped(name, reason string) {
	if r.Skipped == nil {
		r.Skipped = make(map[string]string)
	}
	r.Skipped[name] = reason
}

// EnvWriter persists user environment changes in an OS-specific way.
type EnvWriter interface {
	Apply(snapshot EnvSnapshot) (EnvResult, error)
}

// NewEnvWriter returns the environment writer for the running OS.
func NewEnvWriter() EnvWriter {
	return newEnvWriter()
}

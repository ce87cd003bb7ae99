package fetch

// Source records where a pipeline stage obtained its data.
type Source string

const (
	// SourceRemote means the distribution endpoint served the data.
	SourceRemote Source = "remote"

	// SourceLocal means the bundled fallback mirror served the data.
	SourceLocal Source = "local fallback"

	// SourcePinned means no fetch happened: the caller named a concrete
	// version and it was used as-is.
	SourcePinned Source = "pinned"
)

func (s Source) String() string {
	return string(s)
}

// ResolvedVersion is the outcome of version resolution.
type ResolvedVersion struct {
	// Version is the concrete version string, trimmed.
	Version string

	// Source records where the pointer was read from.
	Source Source

	// Pinned is true when the caller requested a concrete version and no
	// pointer lookup took place.
	Pinned bool
}

// Artifact is a downloaded and checksum-verified release binary. Its Source
// is independent of where the version pointer or manifest came from.
type Artifact struct {
	Path        string
	Version     string
	PlatformKey string
	Source      Source
}

package fetch

import (
	"encoding/json"

	apperrors "codeassist/internal/errors"
)

// Manifest is the per-version release manifest published beside the binaries.
type Manifest struct {
	Platforms map[string]ChecksumEntry `json:"platforms"`
}

// ChecksumEntry carries the expected SHA-256 digest for one platform build.
type ChecksumEntry struct {
	Checksum string `json:"checksum"`
}

// ParseManifest decodes a manifest document. A document without a platforms
// section is rejected; it cannot drive any download.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperrors.ManifestError("failed to parse release manifest", err)
	}
	if m.Platforms == nil {
		return nil, apperrors.ManifestError("release manifest has no platforms section", nil)
	}
	return &m, nil
}

// PlatformEntry returns the checksum entry for the given platform key. A
// missing key is reported before any download is attempted.
func (m *Manifest) PlatformEntry(key string) (ChecksumEntry, error) {
	entry, ok := m.Platforms[key]
	if !ok {
		return ChecksumEntry{}, apperrors.UnsupportedPlatformError(key)
	}
	return entry, nil
}

// Package version validates installation targets. A target is either a
// symbolic release channel or a concrete semantic version; nothing else is
// accepted before the pipeline starts.
package version

import (
	"strings"

	apperrors "codeassist/internal/errors"

	"github.com/Masterminds/semver/v3"
)

// Release channels understood by the distribution endpoint.
const (
	ChannelStable = "stable"
	ChannelLatest = "latest"

	// DefaultTarget is used when the caller names no target.
	DefaultTarget = ChannelLatest
)

// IsChannel reports whether target names a symbolic release channel.
func IsChannel(target string) bool {
	switch target {
	case ChannelStable, ChannelLatest:
		return true
	default:
		return false
	}
}

// IsConcrete reports whether target is a literal semantic version, optionally
// carrying a pre-release suffix.
func IsConcrete(target string) bool {
	_, err := semver.StrictNewVersion(strings.TrimPrefix(target, "v"))
	return err == nil
}

// ValidateTarget ensures target is a channel or a concrete semantic version.
func ValidateTarget(target string) error {
	if target == "" {
		return apperrors.ValidationError(apperrors.CodeValidationGeneric,
			"target must not be empty", nil)
	}
	if IsChannel(target) || IsConcrete(target) {
		return nil
	}
	return apperrors.ValidationError(apperrors.CodeValidationGeneric,
		"invalid target "+target+": expected stable, latest, or a semantic version", nil).
		WithField("target", target)
}

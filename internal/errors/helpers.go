package errors

import "time"

// New creates a generic AppError with the supplied metadata.
func New(code string, category ErrorCategory, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		Category:  category,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// SystemError creates a SYSTEM category error instance.
func SystemError(code, message string, err error) *AppError {
	return New(code, ErrCategorySystem, message, err)
}

// NetworkError creates a NETWORK category error instance.
func NetworkError(code, message string, err error) *AppError {
	appErr := New(code, ErrCategoryNetwork, message, err)
	appErr.Recoverable = true
	return appErr
}

// ConfigError creates a CONFIG category error instance.
func ConfigError(code, message string, err error) *AppError {
	return New(code, ErrCategoryConfig, message, err)
}

// ValidationError creates a VALIDATION category error instance.
func ValidationError(code, message string, err error) *AppError {
	return New(code, ErrCategoryValidation, message, err)
}

// DatabaseError creates a DATABASE category error instance.
func DatabaseError(code, message string, err error) *AppError {
	return New(code, ErrCategoryDatabase, message, err)
}

// ResolutionError reports that the version pointer was unavailable from both
// the remote endpoint and the local fallback store.
func ResolutionError(message string, err error) *AppError {
	return New(CodeResolution, ErrCategoryDistribution, message, err)
}

// ManifestError reports that the release manifest was unavailable or unparsable.
func ManifestError(message string, err error) *AppError {
	return New(CodeManifest, ErrCategoryDistribution, message, err)
}

// UnsupportedPlatformError reports that the manifest carries no entry for the
// running platform. Raised before any download is attempted.
func UnsupportedPlatformError(platform string) *AppError {
	return New(CodeUnsupportedPlatform, ErrCategoryDistribution,
		"platform "+platform+" not found in manifest", nil).
		WithField("platform", platform)
}

// DownloadError reports that the binary was unavailable from both sources.
func DownloadError(message string, err error) *AppError {
	return New(CodeDownload, ErrCategoryDistribution, message, err)
}

// ChecksumMismatchError reports a failed integrity check. Always fatal and
// never retried; the offending file is deleted by the caller.
func ChecksumMismatchError(expected, actual string) *AppError {
	appErr := New(CodeChecksumMismatch, ErrCategoryDistribution,
		"checksum verification failed", nil)
	appErr.Recoverable = false
	return appErr.WithFields(Metadata{
		"expected": expected,
		"actual":   actual,
	})
}

// SubprocessError reports a non-zero exit from the downloaded installer.
func SubprocessError(exitCode int, err error) *AppError {
	return New(CodeSubprocess, ErrCategoryInstall,
		"installer subprocess failed", err).
		WithField("exit_code", exitCode)
}

package fetch

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	apperrors "codeassist/internal/errors"
)

// fileSHA256 returns the lowercase hex SHA-256 digest of the file contents.
func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", errors.Wrapf(err, "failed to read file content: %s", path)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

// verifyChecksum compares the file digest with the expected hex string,
// case-insensitively. On mismatch the file is deleted before the error is
// returned so no unverified binary survives the check.
func verifyChecksum(path, expected string) error {
	expected = strings.ToLower(strings.TrimSpace(expected))

	actual, err := fileSHA256(path)
	if err != nil {
		os.Remove(path)
		return apperrors.DownloadError("failed to hash downloaded file", err)
	}

	if actual != expected {
		os.Remove(path)
		return apperrors.ChecksumMismatchError(expected, actual)
	}

	return nil
}

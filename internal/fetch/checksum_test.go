package fetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "codeassist/internal/errors"
)

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	sum, err := fileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)
}

func TestVerifyChecksumCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	err := verifyChecksum(path, "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824")
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "matching file must survive verification")
}

func TestVerifyChecksumMismatchDeletesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	err := verifyChecksum(path, "deadbeef")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeChecksumMismatch))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

package errors

import (
	"io/fs"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  New("DIST-001", ErrCategoryDistribution, "version pointer unavailable", nil),
			want: "[DISTRIBUTION:DIST-001] version pointer unavailable",
		},
		{
			name: "with cause",
			err:  New("NET-000", ErrCategoryNetwork, "request failed", fs.ErrNotExist),
			want: "[NETWORK:NET-000] request failed: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	appErr := DownloadError("binary unavailable", nil)
	wrapped := pkgerrors.Wrap(appErr, "install assist-cli")

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeDownload, got.Code)
	assert.Equal(t, ErrCategoryDistribution, got.Category)
}

func TestHasCode(t *testing.T) {
	err := pkgerrors.Wrap(ChecksumMismatchError("aa", "bb"), "verify")

	assert.True(t, HasCode(err, CodeChecksumMismatch))
	assert.False(t, HasCode(err, CodeDownload))
	assert.False(t, HasCode(fs.ErrNotExist, CodeDownload))
}

func TestChecksumMismatchNeverRecoverable(t *testing.T) {
	err := ChecksumMismatchError("deadbeef", "baadf00d")

	assert.False(t, err.Recoverable)
	assert.Equal(t, "deadbeef", err.Metadata["expected"])
	assert.Equal(t, "baadf00d", err.Metadata["actual"])
}

func TestUnsupportedPlatformCarriesPlatform(t *testing.T) {
	err := UnsupportedPlatformError("darwin-arm64")

	assert.Equal(t, CodeUnsupportedPlatform, err.Code)
	assert.Equal(t, "darwin-arm64", err.Metadata["platform"])
	assert.Contains(t, err.Error(), "darwin-arm64")
}

func TestMetadataClone(t *testing.T) {
	m := Metadata{"a": 1}
	cloned := m.Clone()
	cloned["a"] = 2

	assert.Equal(t, 1, m["a"])
	assert.Nil(t, Metadata{}.Clone())
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	installedAt := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Record(ctx, Receipt{
		Tool:        "assist-cli",
		Version:     "2.0.1",
		Source:      "remote",
		InstalledAt: installedAt,
	}))

	got, err := s.Get(ctx, "assist-cli")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2.0.1", got.Version)
	assert.Equal(t, "remote", got.Source)
	assert.True(t, got.InstalledAt.Equal(installedAt))
}

func TestRecordUpsertsLatestInstall(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Receipt{Tool: "assist-cli", Version: "1.9.0", Source: "remote"}))
	require.NoError(t, s.Record(ctx, Receipt{Tool: "assist-cli", Version: "2.0.1", Source: "local fallback"}))

	receipts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "2.0.1", receipts[0].Version)
	assert.Equal(t, "local fallback", receipts[0].Source)
}

func TestGetMissingReceipt(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Get(context.Background(), "unknown-tool")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Receipt{Tool: "assist-cli", Version: "2.0.1", Source: "remote"}))
	require.NoError(t, s.Remove(ctx, "assist-cli"))
	require.NoError(t, s.Remove(ctx, "assist-cli"), "removing a missing receipt is fine")

	got, err := s.Get(ctx, "assist-cli")
	require.NoError(t, err)
	assert.Nil(t, got)
}

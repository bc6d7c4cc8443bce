package localfs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"auctionbazaar/internal/domain"
	"auctionbazaar/internal/repository/localfs"
)

func TestStore_SaveAndDelete(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := localfs.New(root)
	require.NoError(t, err)
	ctx := context.Background()

	data := []byte("fake image bytes")
	require.NoError(t, store.Save(ctx, "1700000000000-cat.png", data))

	got, err := os.ReadFile(filepath.Join(root, "1700000000000-cat.png"))
	require.NoError(t, err)
	require.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "1700000000000-cat.png"))
	_, err = os.Stat(filepath.Join(root, "1700000000000-cat.png"))
	require.True(t, os.IsNotExist(err))
}

func TestStore_Delete_Missing(t *testing.T) {
	store, err := localfs.New(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(context.Background(), "never-existed.png")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_RejectsEscapingNames(t *testing.T) {
	store, err := localfs.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", "../evil.png", "a/b.png", "..", ".hidden"} {
		err := store.Save(ctx, name, []byte("x"))
		require.ErrorIs(t, err, domain.ErrInvalidInput, "name %q must be rejected", name)
	}
}

func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "uploads")
	store, err := localfs.New(root)
	require.NoError(t, err)
	require.Equal(t, root, store.Root())

	info, err := os.Stat(root)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

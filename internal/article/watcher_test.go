package article

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.md"), []byte("# First\n"), 0o644))

	c := NewCatalog(os.DirFS(dir), "", nil)
	require.NoError(t, c.Reload())
	require.Equal(t, 1, c.Len())

	reloads := make(chan error, 4)
	w := NewWatcher(c, dir, 100*time.Millisecond, nil)
	w.reloaded = func(err error) { reloads <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.md"), []byte("# Second\n"), 0o644))

	select {
	case err := <-reloads:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	require.Equal(t, 2, c.Len())

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherReloadsOnSubdirectoryChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	sub := filepath.Join(dir, "2025", "june")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.md"), []byte("# First\n"), 0o644))

	c := NewCatalog(os.DirFS(dir), "", nil)
	require.NoError(t, c.Reload())
	require.Equal(t, 1, c.Len())

	reloads := make(chan error, 4)
	w := NewWatcher(c, dir, 100*time.Millisecond, nil)
	w.reloaded = func(err error) { reloads <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "nested.md"), []byte("# Nested\n"), 0o644))

	select {
	case err := <-reloads:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	require.Equal(t, 2, c.Len())

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCatalog(os.DirFS(t.TempDir()), "", nil)
	w := NewWatcher(c, filepath.Join(t.TempDir(), "missing"), 0, nil)
	require.Error(t, w.Run(context.Background()))
}

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_SyncsDirectory(t *testing.T) {
	dir := t.TempDir()
	lib, idx := newTestLibrary()

	w := NewWatcher(dir, lib)
	w.settle = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// fsnotify registers the directory asynchronously with Start.
	path := filepath.Join(dir, "new.txt")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("Listen more than you talk."), 0644)
		return !idx.IsEmpty()
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, "new.txt", idx.Documents()[0].Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.pdf"), fixture(t, "pricing.pdf"), 0644))
	require.Eventually(t, func() bool {
		return len(idx.Documents()) == 2
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Remove(filepath.Join(dir, "pricing.pdf")))
	require.Eventually(t, idx.IsEmpty, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, w.Shutdown(context.Background()))
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

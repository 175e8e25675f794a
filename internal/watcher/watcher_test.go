package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	w := &Watcher{name: "kanban"}

	assert.True(t, w.relevant(fsnotify.Event{Name: "/tmp/x/kanban", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/tmp/x/kanban", Op: fsnotify.Rename}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/tmp/x/kanban", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/tmp/x/.kanban.lock", Op: fsnotify.Write}))
}

func TestRun_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kanban")
	require.NoError(t, os.WriteFile(path, []byte("Board\n"), 0o600))

	var calls atomic.Int32
	w, err := New(path, func() { calls.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	for range 5 {
		require.NoError(t, os.WriteFile(path, []byte("Board\n\tCol\n"), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0o600))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(3 * debounceDelay)
	assert.Equal(t, int32(1), calls.Load())
}

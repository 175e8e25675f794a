package filelock

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathFor(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", ".kanban.lock"), PathFor(filepath.Join("dir", "kanban")))
	assert.Equal(t, ".kanban.lock", PathFor("kanban"))
}

func TestAcquire_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".board.lock")

	first, err := Acquire(context.Background(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = Acquire(ctx, path)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, first.Release())

	second, err := Acquire(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestAcquire_WaitsForRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".board.lock")
	held, err := Acquire(context.Background(), path)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		l, err := Acquire(context.Background(), path)
		if err == nil {
			err = l.Release()
		}
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, held.Release())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("second Acquire did not proceed after Release")
	}
}

package mdmacro

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testDebounce = 50 * time.Millisecond

func TestWatcher_RunsCallbackAfterChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	var calls atomic.Int32
	changed := make(chan struct{}, 10)
	w, err := NewWatcher([]string{dir}, func(ctx context.Context) error {
		calls.Add(1)
		changed <- struct{}{}
		return nil
	}, WithDebounce(testDebounce))
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// a burst of writes settles into one callback
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "page.md"), []byte("x"), 0o644))
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("callback not called")
	}
	time.Sleep(5 * testDebounce)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher([]string{t.TempDir()}, func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(nil, func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}

func TestWatcher_MissingDirectoryIsSkipped(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	w, err := NewWatcher([]string{missing, dir, dir + "/"}, func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{missing, dir}, w.Dirs())

	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
}

func TestWatcher_CallbackErrorKeepsWatching(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	changed := make(chan struct{}, 10)
	w, err := NewWatcher([]string{dir}, func(ctx context.Context) error {
		changed <- struct{}{}
		return assert.AnError
	}, WithDebounce(testDebounce))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 2; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte{byte('a' + i)}, 0o644))
		select {
		case <-changed:
		case <-time.After(5 * time.Second):
			t.Fatal("callback not called")
		}
	}
}

func TestWatcher_IgnoredPathDoesNotTrigger(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	out := filepath.Join(dir, "out.html")

	var calls atomic.Int32
	w, err := NewWatcher([]string{dir}, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(testDebounce), WithIgnorePaths(out))
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(out, []byte("x"), 0o644))
		time.Sleep(testDebounce)
	}
	time.Sleep(5 * testDebounce)
	assert.Equal(t, int32(0), calls.Load())

	// other files still count
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.md"), []byte("x"), 0o644))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
}

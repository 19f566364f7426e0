package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/unicode/norm"
)

func TestSignature(t *testing.T) {
	dir := fullDir(t)

	a, err := Signature(dir)
	require.NoError(t, err)
	b, err := Signature(dir)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	writeEnv(t, dir, "Beta_환경데이터.csv", 9)
	c, err := Signature(dir)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = Signature(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestSignatureIgnoresNormalizationForm(t *testing.T) {
	nfc, nfd := t.TempDir(), t.TempDir()
	stamp := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for dir, form := range map[string]norm.Form{nfc: norm.NFC, nfd: norm.NFD} {
		path := filepath.Join(dir, form.String("하늘고_환경데이터.csv"))
		require.NoError(t, os.WriteFile(path, []byte("time\n"), 0o644))
		require.NoError(t, os.Chtimes(path, stamp, stamp))
	}

	a, err := Signature(nfc)
	require.NoError(t, err)
	b, err := Signature(nfd)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCacheReusesUntilChanged(t *testing.T) {
	dir := fullDir(t)
	cache := NewCache(dir, testOptions())

	loads := 0
	cache.OnLoad = func(_ time.Duration, _ Snapshot, err error) {
		require.NoError(t, err)
		loads++
	}

	first, err := cache.Get()
	require.NoError(t, err)
	assert.True(t, first.Reloaded)
	assert.Len(t, first.Dataset.Environment, 18)

	second, err := cache.Get()
	require.NoError(t, err)
	assert.False(t, second.Reloaded)
	assert.Same(t, first.Dataset, second.Dataset)
	assert.Equal(t, 1, loads)

	writeEnv(t, dir, "Beta_환경데이터.csv", 4)
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "Beta_환경데이터.csv"), later, later))

	third, err := cache.Get()
	require.NoError(t, err)
	assert.True(t, third.Reloaded)
	assert.Len(t, third.Dataset.Environment, 14)
	assert.Equal(t, 2, loads)

	cache.Invalidate()
	fourth, err := cache.Get()
	require.NoError(t, err)
	assert.True(t, fourth.Reloaded)
	assert.Equal(t, 3, loads)
}

func TestCacheDoesNotKeepFatalResult(t *testing.T) {
	dir := fullDir(t)
	growthPath := filepath.Join(dir, "4개교_생육결과데이터.xlsx")
	data, err := os.ReadFile(growthPath)
	require.NoError(t, err)
	require.NoError(t, os.Remove(growthPath))

	cache := NewCache(dir, testOptions())
	var lastErr error
	cache.OnLoad = func(_ time.Duration, _ Snapshot, err error) { lastErr = err }

	_, err = cache.Get()
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.ErrorIs(t, lastErr, ErrMissingFile)

	require.NoError(t, os.WriteFile(growthPath, data, 0o644))
	snap, err := cache.Get()
	require.NoError(t, err)
	assert.Len(t, snap.Dataset.Growth, 5)
}

func TestCacheMissingDirectory(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "gone"), testOptions())
	_, err := cache.Get()
	assert.ErrorIs(t, err, ErrMissingDirectory)
}

func TestWatcherInvalidates(t *testing.T) {
	dir := fullDir(t)
	cache := NewCache(dir, testOptions())
	_, err := cache.Get()
	require.NoError(t, err)

	w, err := NewWatcher(cache, 20*time.Millisecond)
	require.NoError(t, err)
	fired := make(chan fsnotify.Event, 8)
	w.OnInvalidate = func(ev fsnotify.Event) { fired <- ev }

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-w.Done()
		_ = w.Close()
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not invalidate the cache")
	}

	snap, err := cache.Get()
	require.NoError(t, err)
	assert.True(t, snap.Reloaded)
}

func TestWatcherStopsWithoutLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := NewCache(fullDir(t), testOptions())
	w, err := NewWatcher(cache, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	cancel()
	<-w.Done()
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

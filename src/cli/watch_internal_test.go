// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/certview/src/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoop(t *testing.T, target string, logs *bytes.Buffer) (*watchLoop, *atomic.Int32) {
	t.Helper()
	abs, err := filepath.Abs(target)
	require.NoError(t, err)

	var reloads atomic.Int32
	return &watchLoop{
		targets:  map[string]struct{}{abs: {}},
		debounce: 20 * time.Millisecond,
		reload:   func() { reloads.Add(1) },
		log:      logger.New("text", logs, false),
	}, &reloads
}

func TestWatchLoop_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "inventory.json")
	loop, reloads := newTestLoop(t, target, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	done := make(chan error, 1)
	go func() { done <- loop.run(ctx, events, errs) }()

	for range 5 {
		events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	}
	assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// Unrelated files and metadata-only changes never reload.
	events <- fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: target, Op: fsnotify.Chmod}
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())

	events <- fsnotify.Event{Name: target, Op: fsnotify.Create}
	assert.Eventually(t, func() bool { return reloads.Load() == 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop on cancellation")
	}
}

func TestWatchLoop_LogsErrorsAndStopsOnClose(t *testing.T) {
	var logs bytes.Buffer
	loop, reloads := newTestLoop(t, "inventory.json", &logs)

	events := make(chan fsnotify.Event)
	errs := make(chan error, 1)
	errs <- errors.New("queue overflow")
	close(events)

	// Close of events may be observed before the error, so only the exit
	// is asserted unconditionally.
	require.NoError(t, loop.run(context.Background(), events, errs))
	assert.Zero(t, reloads.Load())

	errs2 := make(chan error)
	events2 := make(chan fsnotify.Event)
	done := make(chan error, 1)
	go func() { done <- loop.run(context.Background(), events2, errs2) }()
	errs2 <- errors.New("queue overflow")
	close(errs2)
	require.NoError(t, <-done)
	assert.Contains(t, logs.String(), "warning: file watcher: queue overflow")
}

func TestWatchTargets(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.pem")

	targets, err := watchTargets(watcher, []string{a, b, a})
	require.NoError(t, err)
	assert.Len(t, targets, 2)
	assert.Equal(t, []string{dir}, watcher.WatchList())

	_, err = watchTargets(watcher, []string{filepath.Join(dir, "missing", "c.json")})
	assert.Error(t, err, "a missing directory cannot be watched")
}

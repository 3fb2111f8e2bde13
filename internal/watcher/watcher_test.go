package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string, fn Handler) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	w := New(path, WithDelay(30*time.Millisecond))
	go func() { done <- w.Run(ctx, fn) }()

	// Give fsnotify time to register the directory.
	time.Sleep(50 * time.Millisecond)

	return func() {
		cancelCtx()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Run did not stop after cancel")
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# one"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 10)
	stop := startWatcher(t, path, func(_ context.Context, p string) error {
		changed <- p
		return nil
	})
	defer stop()

	if err := os.WriteFile(path, []byte("# two"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != path {
			t.Errorf("handler path = %q, want %q", p, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	stop := startWatcher(t, path, func(context.Context, string) error {
		calls.Add(1)
		return nil
	})
	defer stop()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(300 * time.Millisecond)

	if n := calls.Load(); n != 1 {
		t.Errorf("handler called %d times, want 1", n)
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	stop := startWatcher(t, path, func(context.Context, string) error {
		calls.Add(1)
		return nil
	})
	defer stop()

	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("handler called %d times for a sibling file", n)
	}
}

func TestWatcherHandlerErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 10)
	stop := startWatcher(t, path, func(context.Context, string) error {
		changed <- struct{}{}
		return errors.New("render failed")
	})
	defer stop()

	for i := 0; i < 2; i++ {
		if err := os.WriteFile(path, []byte{byte(i)}, 0o644); err != nil {
			t.Fatal(err)
		}
		select {
		case <-changed:
		case <-time.After(2 * time.Second):
			t.Fatalf("change %d not reported", i)
		}
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "doc.md"))
	err := w.Run(context.Background(), func(context.Context, string) error { return nil })
	if !errors.Is(err, ErrPathNotExist) {
		t.Fatalf("err = %v, want ErrPathNotExist", err)
	}
}

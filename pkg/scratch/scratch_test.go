package scratch_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/canopy/pkg/scratch"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	f, err := scratch.Write(dir, "tomato", ".jpg", []byte("leaf"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	defer f.Release()

	if filepath.Dir(f.Path()) != dir {
		t.Errorf("dir: got %s, want %s", filepath.Dir(f.Path()), dir)
	}
	base := filepath.Base(f.Path())
	if !strings.HasPrefix(base, "tomato-") || !strings.HasSuffix(base, ".jpg") {
		t.Errorf("name: got %s, want tomato-<token>.jpg", base)
	}

	data, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "leaf" {
		t.Errorf("content: got %q, want leaf", data)
	}
}

func TestWriteNormalizesExtension(t *testing.T) {
	f, err := scratch.Write(t.TempDir(), "corn", "png", nil)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	defer f.Release()

	if ext := filepath.Ext(f.Path()); ext != ".png" {
		t.Errorf("ext: got %s, want .png", ext)
	}
}

func TestRelease(t *testing.T) {
	f, err := scratch.Write(t.TempDir(), "tomato", ".jpg", []byte("x"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if err := f.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(f.Path()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("file still present after release: %v", err)
	}
	if err := f.Release(); err != nil {
		t.Errorf("second Release: got %v, want nil", err)
	}
}

func TestWriteMissingDir(t *testing.T) {
	_, err := scratch.Write(filepath.Join(t.TempDir(), "absent"), "tomato", ".jpg", []byte("x"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestWriteUniqueUnderLoad(t *testing.T) {
	dir := t.TempDir()
	const n = 64

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		paths = make(map[string]struct{}, n)
	)

	for range n {
		wg.Go(func() {
			f, err := scratch.Write(dir, "tomato", ".jpg", []byte("x"))
			if err != nil {
				t.Errorf("Write failed: %v", err)
				return
			}
			defer f.Release()

			mu.Lock()
			paths[f.Path()] = struct{}{}
			mu.Unlock()
		})
	}
	wg.Wait()

	if len(paths) != n {
		t.Errorf("unique paths: got %d, want %d", len(paths), n)
	}
}

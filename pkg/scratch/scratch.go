// Package scratch provides request-scoped temporary files.
// Every file carries a random token in its name so concurrent callers
// never share a path.
package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// File is a temporary file owned by a single caller until Release.
type File struct {
	path string
	once sync.Once
	err  error
}

// Path returns the absolute location of the file.
func (f *File) Path() string {
	return f.path
}

// Release removes the file. It is safe to call more than once.
func (f *File) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.err = fmt.Errorf("remove scratch file %s: %w", f.path, err)
		}
	})
	return f.err
}

// Write creates a new file in dir named "<prefix>-<token><ext>" and fills it with data.
// An empty dir resolves to os.TempDir. The file is removed if writing fails.
func Write(dir, prefix, ext string, data []byte) (*File, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	name := fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext)
	path := filepath.Join(dir, name)

	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}

	f := &File{path: path}

	if _, err := fh.Write(data); err != nil {
		fh.Close()
		f.Release()
		return nil, fmt.Errorf("write scratch file: %w", err)
	}
	if err := fh.Close(); err != nil {
		f.Release()
		return nil, fmt.Errorf("close scratch file: %w", err)
	}

	return f, nil
}

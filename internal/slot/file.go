// Package slot provides durable single-value storage cells for the board
// store.
package slot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// File stores the value in a single file, written atomically.
type File struct {
	path string
}

// NewFile creates a slot backed by the file at path. The parent directory
// is created on first save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) lockPath() string {
	return f.path + ".lock"
}

// Load reads the file. It returns nil data if the file doesn't exist.
func (f *File) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Save replaces the file contents. Identical contents are not rewritten.
func (f *File) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	lockFile, err := os.OpenFile(f.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	if existing, err := os.ReadFile(f.path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read slot file: %w", err)
	}

	// Write atomically via temp file
	tmpFile, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp slot file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp slot file: %w", err)
	}

	if err := os.Rename(name, f.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename slot file: %w", err)
	}

	return nil
}

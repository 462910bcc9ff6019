package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const tempDirName = ".tmp"

// localStorage implements Storage on a directory tree rooted at root.
// Objects are written to a temp file first and renamed into place, so a
// key either holds complete content or nothing. Safe for concurrent use:
// distinct keys never touch the same path.
type localStorage struct {
	root string
}

// NewLocal creates a local filesystem storage rooted at dir, creating the
// directory (and a temp subdirectory for in-flight writes) if absent.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	root := filepath.Clean(dir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(root, tempDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return &localStorage{root: root}, nil
}

func (l *localStorage) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

// Put streams the reader into a temp file, then renames it to the key path.
// Rename is atomic on the same filesystem, so readers never observe a
// partially written object.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	tmpPath := filepath.Join(l.root, tempDirName, uuid.NewString())
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return ObjectInfo{}, fmt.Errorf("write object %q: %w", key, err)
	}

	dst := l.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		_ = os.Remove(tmpPath)
		return ObjectInfo{}, fmt.Errorf("create object dir: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return ObjectInfo{}, fmt.Errorf("commit object %q: %w", key, err)
	}

	return ObjectInfo{
		Key:          key,
		Size:         written,
		ContentType:  opt.ContentType,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get opens the object for streaming. A missing file maps to ErrNotFound.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}

	f, err := os.Open(l.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ObjectInfo{}, fmt.Errorf("object %q: %w", key, ErrNotFound)
		}
		return nil, ObjectInfo{}, fmt.Errorf("open object %q: %w", key, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("stat object %q: %w", key, err)
	}

	return f, ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

// Delete removes the object file. A missing file maps to ErrNotFound.
func (l *localStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(l.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("object %q: %w", key, ErrNotFound)
		}
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

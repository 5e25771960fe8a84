package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Compile-time check that LocalStorage implements the Storage interface.
var _ Storage = (*LocalStorage)(nil)

// PublicPrefix is the URL path the HTTP layer mounts local files under.
// It is fixed regardless of where UPLOAD_ROOT points on disk.
const PublicPrefix = "/uploads"

// LocalStorage stores files on the local filesystem under a root directory.
// Files are served by the application itself, so URLs are root-relative.
type LocalStorage struct {
	root string
}

// NewLocal creates the local backend and ensures the root directory exists.
func NewLocal(cfg Config) (*LocalStorage, error) {
	root := cfg.UploadRoot
	if root == "" {
		return nil, fmt.Errorf("%w: upload root is empty, set UPLOAD_ROOT", ErrInvalidConfig)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &LocalStorage{root: root}, nil
}

// Save writes the upload to disk under a generated key.
func (l *LocalStorage) Save(ctx context.Context, upload Upload, dir string) (*File, error) {
	if upload.Reader == nil {
		return nil, ErrMissingUpload
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := newObjectKey(dir, upload.Filename)
	if err != nil {
		return nil, err
	}

	full := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToSaveFile, err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToSaveFile, err)
	}

	size, err := io.Copy(dst, upload.Reader)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return nil, fmt.Errorf("%w: %v", ErrFailedToSaveFile, err)
	}

	return &File{
		Key:         key,
		Filename:    SanitizeFilename(upload.Filename),
		ContentType: NormalizeContentType(upload.ContentType),
		Size:        size,
	}, nil
}

// Open returns the file content for reading.
func (l *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}

// Delete removes the file.
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return err
	}
	return nil
}

// Exists reports whether the file is present.
func (l *LocalStorage) Exists(ctx context.Context, key string) bool {
	key, err := cleanKey(key)
	if err != nil || ctx.Err() != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(l.root, filepath.FromSlash(key)))
	return err == nil && !info.IsDir()
}

// URL returns the public path the application serves the file from.
func (l *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return path.Join(PublicPrefix, key), nil
}

// Healthcheck verifies the root directory is writable.
func (l *LocalStorage) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	probe, err := os.CreateTemp(l.root, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHealthcheckFailed, err)
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrHealthcheckFailed, err)
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("%w: %v", ErrHealthcheckFailed, err)
	}
	return nil
}

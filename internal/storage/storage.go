package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Upload describes an incoming file.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// File describes a stored object.
type File struct {
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Storage is the backend-independent file store.
type Storage interface {
	// Save stores the upload under a generated key inside dir.
	Save(ctx context.Context, upload Upload, dir string) (*File, error)
	// Open returns the object content for reading. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object. Missing objects yield ErrFileNotFound.
	Delete(ctx context.Context, key string) error
	// Exists reports whether the object is present.
	Exists(ctx context.Context, key string) bool
	// URL returns a client-usable download URL for the object.
	URL(ctx context.Context, key string) (string, error)
	// Healthcheck verifies the backend is reachable and writable.
	Healthcheck(ctx context.Context) error
}

// New selects and constructs the backend from configuration.
func New(ctx context.Context, cfg Config) (Storage, error) {
	if cfg.UseS3() {
		return NewS3(ctx, cfg)
	}
	return NewLocal(cfg)
}

// DeleteBestEffort removes an object, logging failures instead of
// propagating them. Used for cleanup paths where a leftover object is
// preferable to failing the request.
func DeleteBestEffort(ctx context.Context, s Storage, log *slog.Logger, key string) {
	if s == nil || key == "" {
		return
	}
	if log == nil {
		log = slog.Default()
	}
	if err := s.Delete(ctx, key); err != nil && !errors.Is(err, ErrFileNotFound) {
		log.Warn("failed to delete file", "key", key, "error", err)
	}
}

// SanitizeFilename reduces a client-supplied filename to a safe base name.
// Path separators are stripped and suspicious characters replaced.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "file"
	}
	if len(cleaned) > 255 {
		cleaned = cleaned[len(cleaned)-255:]
	}
	return cleaned
}

// NormalizeContentType canonicalizes MIME types coming from clients.
// Browsers commonly send "image/jpg", which S3 and downstream consumers
// reject; unknown or empty types fall back to octet-stream.
func NormalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "" {
		return "application/octet-stream"
	}
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	return ct
}

// newObjectKey builds a collision-free object key: a random UUID in hex
// form with the sanitized original extension, placed under dir.
func newObjectKey(dir, filename string) (string, error) {
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if strings.Contains(dir, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, dir)
	}

	u := uuid.New()
	name := hex.EncodeToString(u[:]) + strings.ToLower(path.Ext(SanitizeFilename(filename)))
	if dir == "" {
		return name, nil
	}
	return path.Join(dir, name), nil
}

// cleanKey validates a storage key before it reaches a backend.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return key, nil
}

package storage_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leodymann/wi-api/internal/storage"
)

func TestNewLocal(t *testing.T) {
	t.Parallel()

	t.Run("creates missing root directory", func(t *testing.T) {
		t.Parallel()

		root := filepath.Join(t.TempDir(), "nested", "uploads")
		_, err := storage.NewLocal(storage.Config{UploadRoot: root})
		require.NoError(t, err)

		info, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects empty root", func(t *testing.T) {
		t.Parallel()

		_, err := storage.NewLocal(storage.Config{})
		require.ErrorIs(t, err, storage.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "UPLOAD_ROOT")
	})
}

func TestLocalStorageLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
	require.NoError(t, err)

	file, err := s.Save(ctx, storage.Upload{
		Reader:      bytes.NewReader([]byte("hello world")),
		Filename:    "Greeting.TXT",
		ContentType: "text/plain",
	}, "docs")
	require.NoError(t, err)

	assert.Regexp(t, `^docs/[0-9a-f]{32}\.txt$`, file.Key)
	assert.Equal(t, "Greeting.TXT", file.Filename)
	assert.Equal(t, "text/plain", file.ContentType)
	assert.Equal(t, int64(len("hello world")), file.Size)

	assert.True(t, s.Exists(ctx, file.Key))

	rc, err := s.Open(ctx, file.Key)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	url, err := s.URL(ctx, file.Key)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+file.Key, url)

	require.NoError(t, s.Delete(ctx, file.Key))
	assert.False(t, s.Exists(ctx, file.Key))
}

func TestLocalStorageSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("rejects missing body", func(t *testing.T) {
		t.Parallel()

		s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
		require.NoError(t, err)

		_, err = s.Save(ctx, storage.Upload{Filename: "a.txt"}, "")
		assert.ErrorIs(t, err, storage.ErrMissingUpload)
	})

	t.Run("rejects traversal in dir", func(t *testing.T) {
		t.Parallel()

		s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
		require.NoError(t, err)

		_, err = s.Save(ctx, storage.Upload{
			Reader:   bytes.NewReader([]byte("x")),
			Filename: "a.txt",
		}, "../escape")
		assert.ErrorIs(t, err, storage.ErrInvalidPath)
	})

	t.Run("normalizes jpg content type", func(t *testing.T) {
		t.Parallel()

		s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
		require.NoError(t, err)

		file, err := s.Save(ctx, storage.Upload{
			Reader:      bytes.NewReader([]byte("x")),
			Filename:    "pic.jpg",
			ContentType: "image/jpg",
		}, "")
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", file.ContentType)
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		t.Parallel()

		s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = s.Save(canceled, storage.Upload{
			Reader:   bytes.NewReader([]byte("x")),
			Filename: "a.txt",
		}, "")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStorageOpen(t *testing.T) {
	t.Parallel()

	s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
	require.NoError(t, err)

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := s.Open(context.Background(), "missing.txt")
		assert.ErrorIs(t, err, storage.ErrFileNotFound)
	})

	t.Run("invalid key", func(t *testing.T) {
		t.Parallel()

		_, err := s.Open(context.Background(), "../../etc/passwd")
		assert.ErrorIs(t, err, storage.ErrInvalidPath)
	})
}

func TestLocalStorageDelete(t *testing.T) {
	t.Parallel()

	s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
	require.NoError(t, err)

	err = s.Delete(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestLocalStorageHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("writable root passes", func(t *testing.T) {
		t.Parallel()

		s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
		require.NoError(t, err)

		assert.NoError(t, s.Healthcheck(context.Background()))
	})

	t.Run("canceled context fails", func(t *testing.T) {
		t.Parallel()

		s, err := storage.NewLocal(storage.Config{UploadRoot: t.TempDir()})
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, s.Healthcheck(canceled))
	})
}

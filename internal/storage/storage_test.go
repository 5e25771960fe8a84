package storage_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leodymann/wi-api/internal/storage"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name survives", "report.pdf", "report.pdf"},
		{"path components are stripped", "../../etc/passwd", "passwd"},
		{"windows path components are stripped", `C:\Users\me\cv.docx`, "cv.docx"},
		{"spaces become underscores", "my photo.jpg", "my_photo.jpg"},
		{"unicode becomes underscores", "relatório.pdf", "relat_rio.pdf"},
		{"empty name falls back", "", "file"},
		{"dots only falls back", "...", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, storage.SanitizeFilename(tt.in))
		})
	}
}

func TestNormalizeContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"jpg alias becomes jpeg", "image/jpg", "image/jpeg"},
		{"jpeg passes through", "image/jpeg", "image/jpeg"},
		{"png passes through", "image/png", "image/png"},
		{"case is lowered", "Image/PNG", "image/png"},
		{"empty falls back to octet-stream", "", "application/octet-stream"},
		{"whitespace falls back to octet-stream", "  ", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, storage.NormalizeContentType(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("selects local backend without a bucket", func(t *testing.T) {
		t.Parallel()

		s, err := storage.New(context.Background(), storage.Config{
			UploadRoot: t.TempDir(),
		})
		require.NoError(t, err)

		assert.IsType(t, &storage.LocalStorage{}, s)
	})

	t.Run("selects s3 backend when a bucket is set", func(t *testing.T) {
		t.Parallel()

		s, err := storage.New(context.Background(), storage.Config{
			S3Bucket:        "test-bucket",
			S3Region:        "auto",
			AccessKeyID:     "test",
			SecretAccessKey: "test",
		})
		require.NoError(t, err)

		assert.IsType(t, &storage.S3Storage{}, s)
	})
}

func TestConfigUseS3(t *testing.T) {
	t.Parallel()

	assert.False(t, storage.Config{}.UseS3())
	assert.True(t, storage.Config{S3Bucket: "b"}.UseS3())
}

func TestDeleteBestEffort(t *testing.T) {
	t.Parallel()

	newLocal := func(t *testing.T) (*storage.LocalStorage, string) {
		t.Helper()
		root := t.TempDir()
		s, err := storage.NewLocal(storage.Config{UploadRoot: root})
		require.NoError(t, err)
		return s, root
	}

	t.Run("removes existing file", func(t *testing.T) {
		t.Parallel()

		s, _ := newLocal(t)
		file, err := s.Save(context.Background(), storage.Upload{
			Reader:   bytes.NewReader([]byte("data")),
			Filename: "a.txt",
		}, "")
		require.NoError(t, err)

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		storage.DeleteBestEffort(context.Background(), s, log, file.Key)

		assert.False(t, s.Exists(context.Background(), file.Key))
		assert.Empty(t, buf.String())
	})

	t.Run("missing file is silent", func(t *testing.T) {
		t.Parallel()

		s, _ := newLocal(t)

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		storage.DeleteBestEffort(context.Background(), s, log, "nope.txt")

		assert.Empty(t, buf.String())
	})

	t.Run("other failures are logged", func(t *testing.T) {
		t.Parallel()

		s, _ := newLocal(t)

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		storage.DeleteBestEffort(context.Background(), s, log, "../outside")

		assert.Contains(t, buf.String(), "failed to delete file")
	})

	t.Run("nil storage is a no-op", func(t *testing.T) {
		t.Parallel()

		storage.DeleteBestEffort(context.Background(), nil, nil, "key")
	})
}

func TestLocalURLUsesPublicPrefix(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "custom-root")
	s, err := storage.NewLocal(storage.Config{UploadRoot: root})
	require.NoError(t, err)

	url, err := s.URL(context.Background(), "docs/a.txt")
	require.NoError(t, err)

	assert.Equal(t, "/uploads/docs/a.txt", url)
}

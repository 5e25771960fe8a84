package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectKey(t *testing.T) {
	t.Parallel()

	hexName := regexp.MustCompile(`^[0-9a-f]{32}$`)

	t.Run("places key under dir with lowercased extension", func(t *testing.T) {
		t.Parallel()

		key, err := newObjectKey("avatars", "Photo.JPG")
		require.NoError(t, err)

		assert.Regexp(t, `^avatars/[0-9a-f]{32}\.jpg$`, key)
	})

	t.Run("empty dir yields bare key", func(t *testing.T) {
		t.Parallel()

		key, err := newObjectKey("", "report.pdf")
		require.NoError(t, err)

		assert.Regexp(t, `^[0-9a-f]{32}\.pdf$`, key)
	})

	t.Run("no extension yields bare hex name", func(t *testing.T) {
		t.Parallel()

		key, err := newObjectKey("", "README")
		require.NoError(t, err)

		assert.True(t, hexName.MatchString(key), "key %q should be 32 hex chars", key)
	})

	t.Run("keys are unique", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{})
		for i := 0; i < 100; i++ {
			key, err := newObjectKey("d", "f.txt")
			require.NoError(t, err)
			_, dup := seen[key]
			require.False(t, dup, "duplicate key %q", key)
			seen[key] = struct{}{}
		}
	})

	t.Run("rejects traversal in dir", func(t *testing.T) {
		t.Parallel()

		_, err := newObjectKey("../escape", "f.txt")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("trims slashes around dir", func(t *testing.T) {
		t.Parallel()

		key, err := newObjectKey("/docs/", "f.txt")
		require.NoError(t, err)

		assert.Regexp(t, `^docs/[0-9a-f]{32}\.txt$`, key)
	})
}

func TestCleanKey(t *testing.T) {
	t.Parallel()

	t.Run("strips leading slash", func(t *testing.T) {
		t.Parallel()

		key, err := cleanKey("/docs/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "docs/a.txt", key)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()

		_, err := cleanKey("   ")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()

		_, err := cleanKey("docs/../../etc/passwd")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})
}

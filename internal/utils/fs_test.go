package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates missing parents", func(t *testing.T) {
		base := t.TempDir()
		target := filepath.Join(base, "a", "b", "c.txt")

		require.NoError(t, EnsureDir(target))

		info, err := os.Stat(filepath.Join(base, "a", "b"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing parent is fine", func(t *testing.T) {
		base := t.TempDir()
		assert.NoError(t, EnsureDir(filepath.Join(base, "c.txt")))
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	file := filepath.Join(base, "present.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(base, "absent.txt")))
	assert.False(t, FileExists(base), "directories are not files")
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde prefix",
			input:    "~/.gitpick/config.yaml",
			expected: filepath.Join(home, ".gitpick", "config.yaml"),
		},
		{
			name:     "bare tilde",
			input:    "~",
			expected: home,
		},
		{
			name:     "absolute path untouched",
			input:    "/tmp/x",
			expected: "/tmp/x",
		},
		{
			name:     "relative path untouched",
			input:    "out/files",
			expected: "out/files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

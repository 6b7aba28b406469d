// Package output writes fetched file bodies to the filesystem.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/gitpick/internal/utils"
)

// Writer saves fetched files under the output directory, preserving their
// repository-relative paths
type Writer struct {
	baseDir    string
	createDirs bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	BaseDir    string
	CreateDirs bool
}

// DefaultWriterOptions returns default writer options
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		BaseDir:    ".",
		CreateDirs: true,
	}
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}

	return &Writer{
		baseDir:    opts.BaseDir,
		createDirs: opts.CreateDirs,
	}
}

// Write saves data under the entry's repository-relative path. Entry paths
// use forward slashes regardless of platform. Paths that would land outside
// the output directory are rejected before any disk access. Parent
// directories are created only when the writer is configured to do so.
func (w *Writer) Write(ctx context.Context, path string, data []byte) error {
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return fmt.Errorf("path %q escapes the output directory", path)
	}

	dest := filepath.Join(w.baseDir, local)

	if w.createDirs {
		if err := utils.EnsureDir(dest); err != nil {
			return err
		}
	}

	return os.WriteFile(dest, data, 0644)
}

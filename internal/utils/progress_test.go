package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	t.Run("determinate progress bar with known total", func(t *testing.T) {
		bar := NewProgressBar(100, DescDownloading)
		require.NotNil(t, bar)
	})

	t.Run("indeterminate progress bar with unknown total", func(t *testing.T) {
		bar := NewProgressBar(-1, DescResolving)
		require.NotNil(t, bar)
	})

	t.Run("zero total", func(t *testing.T) {
		bar := NewProgressBar(0, DescDownloading)
		require.NotNil(t, bar)
	})
}

func TestProgressBarDescriptions(t *testing.T) {
	assert.Equal(t, "Resolving", DescResolving)
	assert.Equal(t, "Downloading", DescDownloading)
}

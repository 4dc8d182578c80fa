package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	t.Run("known total", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(&buf, 3, DescWarming)
		require.NotNil(t, bar)

		require.NoError(t, bar.Add(2))
		assert.Equal(t, int64(3), bar.GetMax64())
		assert.Contains(t, buf.String(), DescWarming)
		assert.Contains(t, buf.String(), "2/3")

		require.NoError(t, bar.Finish())
		assert.True(t, bar.IsFinished())
	})

	t.Run("unknown total", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(&buf, -1, DescChecking)
		require.NotNil(t, bar)

		assert.Contains(t, buf.String(), DescChecking)
		require.NoError(t, bar.Add(1))
	})
}

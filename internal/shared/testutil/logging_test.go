package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferCapturesRecords(t *testing.T) {
	logger, buf := NewTestLogger(t)

	logger.Info("first", slog.String("k", "v"))
	logger.Warn("second")
	logger.Error("third")

	records := buf.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].Message)
	assert.Equal(t, "v", records[0].Attrs["k"])

	assert.True(t, buf.HasMessage("second"))
	assert.False(t, buf.HasMessage("fourth"))
	assert.Equal(t, 1, buf.CountLevel(slog.LevelError))
}

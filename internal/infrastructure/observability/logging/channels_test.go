package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *ChanneledLogger {
	t.Helper()

	logger, err := NewChanneledLogger(&LoggerConfig{
		OutputToConsole: false,
		OutputToFile:    false,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   map[Channel]slog.Level{},
	})
	require.NoError(t, err)
	return logger
}

func TestSetChannelLevelOverridesDefault(t *testing.T) {
	logger := newTestLogger(t)
	ctx := context.Background()

	require.False(t, logger.Content().Enabled(ctx, slog.LevelDebug))

	require.NoError(t, logger.SetChannelLevel(ChannelContent, slog.LevelDebug))
	assert.True(t, logger.Content().Enabled(ctx, slog.LevelDebug))

	// Other channels keep the default level.
	assert.False(t, logger.Editor().Enabled(ctx, slog.LevelDebug))
}

func TestSetChannelLevelUnknownChannelFails(t *testing.T) {
	logger := newTestLogger(t)

	err := logger.SetChannelLevel(Channel("nonsense"), slog.LevelDebug)
	assert.Error(t, err)
}

func TestWithOperationFallsBackToSystemChannel(t *testing.T) {
	logger := newTestLogger(t)

	assert.NotNil(t, logger.WithOperation(ChannelAuth, "login"))
	assert.NotNil(t, logger.WithOperation(Channel("nonsense"), "login"))
}

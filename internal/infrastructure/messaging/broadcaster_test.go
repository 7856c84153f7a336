package messaging

import (
	"log/slog"
	"testing"

	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroadcaster(t *testing.T) *EditorBroadcaster {
	t.Helper()

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		OutputToFile:    false,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)
	return NewEditorBroadcaster(logger)
}

func TestConnectionCountTracksClients(t *testing.T) {
	b := newTestBroadcaster(t)
	first := &websocket.Conn{}
	second := &websocket.Conn{}

	assert.Equal(t, 0, b.GetConnectionCount("page-count"))

	b.AddClient("page-count", first)
	b.AddClient("page-count", second)
	assert.Equal(t, 2, b.GetConnectionCount("page-count"))
	assert.Equal(t, 0, b.GetConnectionCount("page-other"))

	b.RemoveClient("page-count", first)
	assert.Equal(t, 1, b.GetConnectionCount("page-count"))

	b.RemoveClient("page-count", second)
	assert.Equal(t, 0, b.GetConnectionCount("page-count"))
}

func TestRemoveClientIsIdempotent(t *testing.T) {
	b := newTestBroadcaster(t)
	conn := &websocket.Conn{}

	b.AddClient("page-idem", conn)
	b.RemoveClient("page-idem", conn)
	b.RemoveClient("page-idem", conn)

	assert.Equal(t, 0, b.GetConnectionCount("page-idem"))
}

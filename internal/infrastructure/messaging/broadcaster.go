// Package messaging provides the websocket broadcaster for editor live updates.
package messaging

import (
	"sync"

	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/pkg/config"
	"github.com/gorilla/websocket"
)

// PageEvent is the payload pushed to editor clients when a page mutates.
type PageEvent struct {
	Event      string   `json:"event"`
	PageID     string   `json:"pageId"`
	SectionIDs []string `json:"sectionIds,omitempty"`
	GotoAnchor string   `json:"gotoAnchor,omitempty"`
}

// EditorBroadcaster manages page-scoped websocket connections from editor
// clients and fans out change events after successful mutations. Delivery is
// fire-and-forget; a failed send only drops that client.
type EditorBroadcaster struct {
	pageClients map[string]map[*websocket.Conn]chan PageEvent // pageId -> conn -> send queue
	mu          sync.Mutex
	logger      *logging.ChanneledLogger
}

var (
	globalBroadcaster *EditorBroadcaster
	once              sync.Once
)

// NewEditorBroadcaster creates the singleton EditorBroadcaster instance.
func NewEditorBroadcaster(logger *logging.ChanneledLogger) *EditorBroadcaster {
	once.Do(func() {
		globalBroadcaster = &EditorBroadcaster{
			pageClients: make(map[string]map[*websocket.Conn]chan PageEvent),
			logger:      logger,
		}
	})
	return globalBroadcaster
}

// AddClient registers a websocket connection watching a page and starts its
// writer goroutine. The returned channel is closed on RemoveClient.
func (b *EditorBroadcaster) AddClient(pageID string, conn *websocket.Conn) chan PageEvent {
	ch := make(chan PageEvent, config.EditorEventBuffer)

	b.mu.Lock()
	if b.pageClients[pageID] == nil {
		b.pageClients[pageID] = make(map[*websocket.Conn]chan PageEvent)
	}
	b.pageClients[pageID][conn] = ch
	b.mu.Unlock()

	go func() {
		for event := range ch {
			if err := conn.WriteJSON(event); err != nil {
				b.logger.Editor().Debug("Editor client write failed", "pageId", pageID, "error", err.Error())
				b.RemoveClient(pageID, conn)
				return
			}
		}
	}()

	b.logger.Editor().Debug("Editor client registered", "pageId", pageID)
	return ch
}

// RemoveClient unregisters a websocket connection and closes its send queue.
func (b *EditorBroadcaster) RemoveClient(pageID string, conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if clients, exists := b.pageClients[pageID]; exists {
		if ch, exists := clients[conn]; exists {
			delete(clients, conn)
			close(ch)
		}
		if len(clients) == 0 {
			delete(b.pageClients, pageID)
		}
	}
	b.logger.Editor().Debug("Editor client unregistered", "pageId", pageID)
}

// GetConnectionCount returns the number of clients watching a page.
func (b *EditorBroadcaster) GetConnectionCount(pageID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.pageClients[pageID])
}

// BroadcastPageUpdated notifies every client watching pageID that sections
// changed. Slow clients lose the event rather than blocking the mutation path.
func (b *EditorBroadcaster) BroadcastPageUpdated(pageID string, sectionIDs []string, gotoAnchor string) {
	event := PageEvent{
		Event:      "page_updated",
		PageID:     pageID,
		SectionIDs: sectionIDs,
		GotoAnchor: gotoAnchor,
	}

	b.mu.Lock()
	clients := b.pageClients[pageID]
	delivered := 0
	for _, ch := range clients {
		select {
		case ch <- event:
			delivered++
		default:
			b.logger.Editor().Warn("Editor event queue full, event dropped", "pageId", pageID)
		}
	}
	b.mu.Unlock()

	b.logger.LogEditorEvent("page_updated", pageID, delivered)
}

package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	mu      sync.RWMutex       // Protects concurrent access
	started time.Time          // When tracking started
	config  *TrackerConfig     // Tracker configuration
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers int `json:"maxMarkers"` // Maximum number of markers to retain
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers: 10000,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
		config:  config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true, // Assume success until proven otherwise
	}

	markerID := fmt.Sprintf("%s_%d", operation, time.Now().UnixNano())

	t.mu.Lock()
	if len(t.markers) >= t.config.MaxMarkers {
		t.evictOldestLocked()
	}
	t.markers[markerID] = marker
	t.mu.Unlock()

	return marker
}

// CompleteOperation manually completes an operation
func (t *Tracker) CompleteOperation(marker *Marker) {
	if marker == nil || marker.Completed {
		return
	}
	marker.Complete()
}

// GetStats returns aggregate statistics over retained markers
func (t *Tracker) GetStats() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var completed, failed int
	var totalDuration time.Duration
	for _, marker := range t.markers {
		if !marker.Completed {
			continue
		}
		completed++
		totalDuration += marker.Duration
		if !marker.Success {
			failed++
		}
	}

	stats := map[string]any{
		"trackedMarkers": len(t.markers),
		"completed":      completed,
		"failed":         failed,
		"uptime":         time.Since(t.started).String(),
	}
	if completed > 0 {
		stats["avgDuration"] = (totalDuration / time.Duration(completed)).String()
	}
	return stats
}

// evictOldestLocked drops the oldest marker. Caller holds t.mu.
func (t *Tracker) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, marker := range t.markers {
		if oldestID == "" || marker.StartTime.Before(oldest) {
			oldestID = id
			oldest = marker.StartTime
		}
	}
	if oldestID != "" {
		delete(t.markers, oldestID)
	}
}

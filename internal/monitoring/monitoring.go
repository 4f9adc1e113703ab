// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Service counts service events in memory and logs them. The counters
// back the metrics endpoint; there is no external metrics backend.
type Service struct {
	mu       sync.RWMutex
	counters map[string]int64
	lastSeen map[string]time.Time
}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{
		counters: make(map[string]int64),
		lastSeen: make(map[string]time.Time),
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := time.Now().UTC()

	s.mu.Lock()
	s.counters[eventName]++
	s.lastSeen[eventName] = ts
	s.mu.Unlock()

	nuts.L.Infof("[Monitoring] Event %s recorded at %v with labels: %v", eventName, ts, labels)
}

// EventCount returns how often the event has been recorded since start.
func (s *Service) EventCount(eventName string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[eventName]
}

// Snapshot returns all counters with their last occurrence, for the
// metrics endpoint.
func (s *Service) Snapshot() map[string]EventStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]EventStats, len(s.counters))
	for name, count := range s.counters {
		snapshot[name] = EventStats{
			Count:    count,
			LastSeen: s.lastSeen[name],
		}
	}
	return snapshot
}

// EventStats is one counter in the metrics snapshot.
type EventStats struct {
	Count    int64     `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

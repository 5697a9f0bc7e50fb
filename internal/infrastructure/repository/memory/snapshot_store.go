package memory

import (
	"sync"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
)

// SnapshotStore holds the current match collection. Writes are
// wholesale replacements: ingestion installs a freshly loaded
// snapshot, the refresher installs a reclassified copy each tick.
// At most one writer is ever active at a time.
type SnapshotStore struct {
	mu      sync.RWMutex
	current *match.Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Current returns the latest snapshot, false before the first load.
// Callers must treat the snapshot as read-only.
func (s *SnapshotStore) Current() (match.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return match.Snapshot{}, false
	}
	return *s.current, true
}

func (s *SnapshotStore) Replace(snapshot match.Snapshot) {
	s.mu.Lock()
	s.current = &snapshot
	s.mu.Unlock()
}

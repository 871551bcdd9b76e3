package store

import (
	"sync"
	"time"

	"github.com/borgmon/sos-sentinel/pkg/models"
	"github.com/google/uuid"
)

// maxActivityEntries bounds the log; older entries fall off the end.
const maxActivityEntries = 200

// ActivityStore is an in-memory log of emergency activity on this device:
// activations raised here and building alerts observed by polling. The
// tray and the settings Activity tab read from it.
type ActivityStore struct {
	mu      sync.RWMutex
	entries []models.ActivityEntry // newest first
}

// NewActivityStore creates an empty ActivityStore
func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

// Record prepends an entry, assigning an id and timestamp if missing.
func (as *ActivityStore) Record(entry models.ActivityEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	as.entries = append([]models.ActivityEntry{entry}, as.entries...)
	if len(as.entries) > maxActivityEntries {
		as.entries = as.entries[:maxActivityEntries]
	}
}

// Recent returns up to limit entries, newest first.
func (as *ActivityStore) Recent(limit int) []models.ActivityEntry {
	as.mu.RLock()
	defer as.mu.RUnlock()

	if limit <= 0 || limit > len(as.entries) {
		limit = len(as.entries)
	}
	out := make([]models.ActivityEntry, limit)
	copy(out, as.entries[:limit])
	return out
}

// All returns every retained entry, newest first.
func (as *ActivityStore) All() []models.ActivityEntry {
	return as.Recent(0)
}

// Len returns the number of retained entries.
func (as *ActivityStore) Len() int {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return len(as.entries)
}

// Clear drops all entries.
func (as *ActivityStore) Clear() {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.entries = nil
}

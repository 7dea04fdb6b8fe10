package filter

import (
	"encoding/json"
	"fmt"
	"time"

	"inventory_catalog_backend/internal/models"
)

// SnapshotKey is the fixed key the engine state is stored under.
const SnapshotKey = "inventory_filter_state"

// SnapshotStore is the external key-value boundary the filter state is
// round-tripped through. Satisfied by the database package's memory and
// Postgres stores.
type SnapshotStore interface {
	Put(key string, payload []byte) error
	Get(key string) ([]byte, error)
}

// Snapshot captures the current criteria as a plain serializable value.
func (e *Engine) Snapshot() models.FilterSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	filters := make(map[string]string, len(e.filters))
	for k, v := range e.filters {
		filters[k] = v
	}
	return models.FilterSnapshot{
		SearchQuery: e.searchQuery,
		Filters:     filters,
		Timestamp:   time.Now(),
	}
}

// Restore replaces the engine state wholesale from a snapshot.
func (e *Engine) Restore(snap models.FilterSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.searchQuery = snap.SearchQuery
	e.filters = make(map[string]string, len(snap.Filters))
	for k, v := range snap.Filters {
		if v != "" {
			e.filters[k] = v
		}
	}
}

// SaveTo serializes the current state into the store under SnapshotKey.
func (e *Engine) SaveTo(kv SnapshotStore) error {
	payload, err := json.Marshal(e.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to serialize filter state: %w", err)
	}
	if err := kv.Put(SnapshotKey, payload); err != nil {
		return fmt.Errorf("failed to persist filter state: %w", err)
	}
	return nil
}

// LoadFrom restores the state saved under SnapshotKey. A missing or
// malformed snapshot is treated as "no saved state": the current state is
// left unchanged and ok is false. Only the lookup error is reported.
func (e *Engine) LoadFrom(kv SnapshotStore) (ok bool, err error) {
	payload, err := kv.Get(SnapshotKey)
	if err != nil {
		return false, err
	}

	var snap models.FilterSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return false, nil
	}
	e.Restore(snap)
	return true, nil
}

// Package database provides the key-value persistence boundary for filter
// snapshots. The item catalog itself is in-memory only; snapshots are the
// single durable surface, backed by Postgres when configured and by a
// process-local map otherwise.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrNoSnapshot is returned by Get when no payload exists under the key.
var ErrNoSnapshot = errors.New("no snapshot stored under key")

// MemorySnapshotStore keeps payloads in process memory. It is the default
// when no database is configured.
type MemorySnapshotStore struct {
	mu       sync.RWMutex
	payloads map[string][]byte
}

// NewMemorySnapshotStore creates an empty in-memory store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{payloads: make(map[string][]byte)}
}

func (m *MemorySnapshotStore) Put(key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(payload))
	copy(buf, payload)
	m.payloads[key] = buf
	return nil
}

func (m *MemorySnapshotStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.payloads[key]
	if !ok {
		return nil, ErrNoSnapshot
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return buf, nil
}

// PostgresSnapshotStore persists payloads in a single key-value table.
type PostgresSnapshotStore struct {
	db *sql.DB
}

const snapshotSchema = `CREATE TABLE IF NOT EXISTS filter_snapshots (
	key        TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// OpenPostgresSnapshotStore connects to Postgres and ensures the snapshot
// table exists.
func OpenPostgresSnapshotStore(host, port, user, password, dbname, sslmode string) (*PostgresSnapshotStore, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(snapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure snapshot table: %w", err)
	}
	return &PostgresSnapshotStore{db: db}, nil
}

func (p *PostgresSnapshotStore) Put(key string, payload []byte) error {
	query := `INSERT INTO filter_snapshots (key, payload, updated_at)
	          VALUES ($1, $2, now())
	          ON CONFLICT (key) DO UPDATE SET payload = $2, updated_at = now()`
	if _, err := p.db.Exec(query, key, payload); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

func (p *PostgresSnapshotStore) Get(key string) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRow("SELECT payload FROM filter_snapshots WHERE key = $1", key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return payload, nil
}

// Close releases the underlying connection pool.
func (p *PostgresSnapshotStore) Close() error {
	return p.db.Close()
}

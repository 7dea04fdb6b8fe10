package filter

import (
	"errors"
	"testing"

	"inventory_catalog_backend/internal/database"
)

func TestSnapshotRoundTrip(t *testing.T) {
	kv := database.NewMemorySnapshotStore()

	saved := NewEngine()
	saved.SetQuery("gizeh")
	saved.SetFilter("jenis", "ASR")
	if err := saved.SaveTo(kv); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	restored := NewEngine()
	loaded, err := restored.LoadFrom(kv)
	if err != nil || !loaded {
		t.Fatalf("LoadFrom = %v, %v; want true, nil", loaded, err)
	}

	snap := restored.Snapshot()
	if snap.SearchQuery != "gizeh" || snap.Filters["jenis"] != "ASR" {
		t.Fatalf("restored state differs: %+v", snap)
	}
	if snap.Timestamp.IsZero() {
		t.Fatal("snapshot timestamp must be set")
	}
}

func TestLoadFromMissingSnapshotIsNonFatal(t *testing.T) {
	e := NewEngine()
	e.SetQuery("keep-me")

	loaded, err := e.LoadFrom(database.NewMemorySnapshotStore())
	if loaded {
		t.Fatal("expected loaded=false for missing snapshot")
	}
	if !errors.Is(err, database.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
	if e.Snapshot().SearchQuery != "keep-me" {
		t.Fatal("previous state must be left unchanged")
	}
}

func TestLoadFromMalformedPayloadKeepsState(t *testing.T) {
	kv := database.NewMemorySnapshotStore()
	if err := kv.Put(SnapshotKey, []byte("{not json")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	e := NewEngine()
	e.SetQuery("keep-me")
	loaded, err := e.LoadFrom(kv)
	if loaded || err != nil {
		t.Fatalf("malformed payload must be treated as no saved state, got loaded=%v err=%v", loaded, err)
	}
	if e.Snapshot().SearchQuery != "keep-me" {
		t.Fatal("previous state must be left unchanged")
	}
}

func TestRestoreReplacesStateWholesale(t *testing.T) {
	e := NewEngine()
	e.SetQuery("old")
	e.SetFilter("merek", "Gizeh")

	fresh := NewEngine()
	fresh.SetFilter("jenis", "PRM")
	e.Restore(fresh.Snapshot())

	snap := e.Snapshot()
	if snap.SearchQuery != "" || snap.Filters["merek"] != "" || snap.Filters["jenis"] != "PRM" {
		t.Fatalf("restore must replace wholesale: %+v", snap)
	}
}

package store

import (
	"strings"
	"sync"
	"time"

	"inventory_catalog_backend/internal/models"
)

// ItemStore owns the authoritative in-memory item collection. It is the
// sole mutator of the collection; readers get defensive copies. The guard
// exists because the HTTP layer serves requests concurrently, the logical
// contract stays last-write-wins.
type ItemStore struct {
	mu     sync.RWMutex
	items  map[int64]*models.Item
	order  []int64
	nextID int64
}

// NewItemStore creates an empty store.
func NewItemStore() *ItemStore {
	return &ItemStore{
		items:  make(map[int64]*models.Item),
		nextID: 1,
	}
}

// Add stores a new item. A missing or already-taken id is replaced with the
// next free one, so ids stay unique even when callers supply them out of
// order. CreatedAt/UpdatedAt are set to the current time. Add never fails.
func (s *ItemStore) Add(rec models.Item) *models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(rec)
}

func (s *ItemStore) addLocked(rec models.Item) *models.Item {
	if rec.ID <= 0 {
		rec.ID = s.nextID
	} else if _, taken := s.items[rec.ID]; taken {
		rec.ID = s.nextID
	}
	if rec.ID >= s.nextID {
		s.nextID = rec.ID + 1
	}

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	item := rec
	s.items[item.ID] = &item
	s.order = append(s.order, item.ID)

	out := item
	return &out
}

// Update merges patch onto the existing record. ID and CreatedAt are
// preserved; UpdatedAt strictly advances. Returns ErrNotFound for an
// unknown id.
func (s *ItemStore) Update(id int64, patch models.ItemPatch) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(id, patch)
}

func (s *ItemStore) updateLocked(id int64, patch models.ItemPatch) (*models.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.KodeItem != nil {
		item.KodeItem = *patch.KodeItem
	}
	if patch.NamaItem != nil {
		item.NamaItem = *patch.NamaItem
	}
	if patch.Barcode != nil {
		item.Barcode = *patch.Barcode
	}
	if patch.Satuan != nil {
		item.Satuan = *patch.Satuan
	}
	if patch.Rak != nil {
		item.Rak = *patch.Rak
	}
	if patch.Jenis != nil {
		item.Jenis = *patch.Jenis
	}
	if patch.Merek != nil {
		item.Merek = *patch.Merek
	}
	if patch.Tipe != nil {
		item.Tipe = *patch.Tipe
	}
	if patch.SystemHpp != nil {
		item.SystemHpp = *patch.SystemHpp
	}
	if patch.StatusJual != nil {
		item.StatusJual = *patch.StatusJual
	}
	if patch.Keterangan != nil {
		item.Keterangan = *patch.Keterangan
	}
	if patch.Supplier != nil {
		item.Supplier = *patch.Supplier
	}
	if patch.Stok != nil {
		item.Stok = *patch.Stok
	}
	if patch.StokMin != nil {
		item.StokMin = *patch.StokMin
	}
	if patch.HargaPokok != nil {
		item.HargaPokok = *patch.HargaPokok
	}
	if patch.HargaJual != nil {
		item.HargaJual = *patch.HargaJual
	}

	// Guarantee UpdatedAt strictly advances even on a fast clock.
	now := time.Now()
	if !now.After(item.UpdatedAt) {
		now = item.UpdatedAt.Add(time.Nanosecond)
	}
	item.UpdatedAt = now

	out := *item
	return &out, nil
}

// Delete removes the record and reports whether it existed.
func (s *ItemStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// GetByID returns a copy of the item, if present.
func (s *ItemStore) GetByID(id int64) (*models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, false
	}
	out := *item
	return &out, true
}

// GetByKode returns the first item with an exact kode match, in insertion
// order. Code uniqueness is only enforced during import, so "first" matters.
func (s *ItemStore) GetByKode(kode string) (*models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if s.items[id].KodeItem == kode {
			out := *s.items[id]
			return &out, true
		}
	}
	return nil, false
}

// GetAll returns copies of all items in insertion order.
func (s *ItemStore) GetAll() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *ItemStore) snapshotLocked() []models.Item {
	out := make([]models.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// searchFields is the fixed field set matched by Search.
func searchFields(it *models.Item) []string {
	return []string{it.KodeItem, it.NamaItem, it.Merek, it.Jenis, it.Barcode}
}

// Search returns items whose code, name, brand, category or barcode
// contains q, case-insensitively. An empty query returns everything.
func (s *ItemStore) Search(q string) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return s.snapshotLocked()
	}

	out := []models.Item{}
	for _, id := range s.order {
		it := s.items[id]
		for _, f := range searchFields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, *it)
				break
			}
		}
	}
	return out
}

// Len reports the number of items in the store.
func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear drops every item and resets the id counter.
func (s *ItemStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[int64]*models.Item)
	s.order = nil
	s.nextID = 1
}

// Package filter derives filtered views from item collections. The engine
// holds the active criteria; it only ever reads the snapshots handed to it
// and never mutates them.
package filter

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"inventory_catalog_backend/internal/models"
)

// DefaultLowStockThreshold is the fallback for the advanced low-stock
// predicate when no threshold is supplied.
const DefaultLowStockThreshold = 10.0

// fieldAccessors maps a named filter to the item field it inspects.
var fieldAccessors = map[string]func(*models.Item) string{
	"jenis":       func(it *models.Item) string { return it.Jenis },
	"satuan":      func(it *models.Item) string { return it.Satuan },
	"status_jual": func(it *models.Item) string { return it.StatusJual },
	"system_hpp":  func(it *models.Item) string { return it.SystemHpp },
	"merek":       func(it *models.Item) string { return it.Merek },
	"tipe":        func(it *models.Item) string { return it.Tipe },
	"rak":         func(it *models.Item) string { return it.Rak },
	"supplier":    func(it *models.Item) string { return it.Supplier },
}

// exactMatchFields compare case-insensitively for equality; every other
// named filter uses substring containment. Dropdown-backed fields are exact.
var exactMatchFields = map[string]bool{
	"jenis":       true,
	"satuan":      true,
	"status_jual": true,
	"system_hpp":  true,
}

// Engine holds the active free-text query and named filter values.
type Engine struct {
	mu          sync.RWMutex
	searchQuery string
	filters     map[string]string
}

// NewEngine creates an engine with no active criteria.
func NewEngine() *Engine {
	return &Engine{filters: make(map[string]string)}
}

// KnownFilterField reports whether name is a recognized named filter.
func KnownFilterField(name string) bool {
	_, ok := fieldAccessors[name]
	return ok
}

// SetQuery replaces the free-text query.
func (e *Engine) SetQuery(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchQuery = strings.TrimSpace(q)
}

// SetFilter sets one named filter. An empty value clears it.
func (e *Engine) SetFilter(field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if strings.TrimSpace(value) == "" {
		delete(e.filters, field)
		return
	}
	e.filters[field] = value
}

// ClearFilters drops the query and every named filter.
func (e *Engine) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchQuery = ""
	e.filters = make(map[string]string)
}

// Apply runs the free-text predicate first, then every active named
// filter. The input is never mutated; relative order is preserved.
func (e *Engine) Apply(items []models.Item) []models.Item {
	e.mu.RLock()
	query := strings.ToLower(e.searchQuery)
	filters := make(map[string]string, len(e.filters))
	for k, v := range e.filters {
		filters[k] = v
	}
	e.mu.RUnlock()

	out := make([]models.Item, 0, len(items))
	for i := range items {
		it := items[i]
		if query != "" && !matchesQuery(&it, query) {
			continue
		}
		if !matchesNamedFilters(&it, filters) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// matchesQuery checks the store's search field set plus supplier and
// description.
func matchesQuery(it *models.Item, query string) bool {
	fields := []string{
		it.KodeItem, it.NamaItem, it.Merek, it.Jenis, it.Barcode,
		it.Supplier, it.Keterangan,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func matchesNamedFilters(it *models.Item, filters map[string]string) bool {
	for field, want := range filters {
		accessor, ok := fieldAccessors[field]
		if !ok {
			continue
		}
		have := accessor(it)
		if exactMatchFields[field] {
			if !strings.EqualFold(have, want) {
				return false
			}
			continue
		}
		if !strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// ApplyAdvanced runs the independent range predicate set, combined with
// logical AND. Nil bounds are unbounded.
func (e *Engine) ApplyAdvanced(items []models.Item, crit models.AdvancedCriteria) []models.Item {
	minHarga, maxHarga := 0.0, math.Inf(1)
	if crit.MinHarga != nil {
		minHarga = *crit.MinHarga
	}
	if crit.MaxHarga != nil {
		maxHarga = *crit.MaxHarga
	}
	minStok, maxStok := 0.0, math.Inf(1)
	if crit.MinStok != nil {
		minStok = *crit.MinStok
	}
	if crit.MaxStok != nil {
		maxStok = *crit.MaxStok
	}
	lowThreshold := DefaultLowStockThreshold
	if crit.LowStockThreshold != nil {
		lowThreshold = *crit.LowStockThreshold
	}

	out := make([]models.Item, 0, len(items))
	for i := range items {
		it := items[i]
		if it.HargaJual < minHarga || it.HargaJual > maxHarga {
			continue
		}
		if it.Stok < minStok || it.Stok > maxStok {
			continue
		}
		if !matchesDateRange(&it, crit.StartDate, crit.EndDate) {
			continue
		}
		if crit.LowStock && it.Stok > lowThreshold {
			continue
		}
		if crit.OutOfStock && it.Stok > 0 {
			continue
		}
		out = append(out, it)
	}
	return out
}

// matchesDateRange filters on CreatedAt, falling back to UpdatedAt when
// the creation timestamp is unset.
func matchesDateRange(it *models.Item, start, end *time.Time) bool {
	ts := it.CreatedAt
	if ts.IsZero() {
		ts = it.UpdatedAt
	}
	if start != nil && ts.Before(*start) {
		return false
	}
	if end != nil && ts.After(*end) {
		return false
	}
	return true
}

// Summary describes the active criteria in human-readable form.
func (e *Engine) Summary() models.FilterSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var descriptions []string
	if e.searchQuery != "" {
		descriptions = append(descriptions, fmt.Sprintf("pencarian: %q", e.searchQuery))
	}

	fields := make([]string, 0, len(e.filters))
	for field := range e.filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		descriptions = append(descriptions, fmt.Sprintf("%s = %q", field, e.filters[field]))
	}

	return models.FilterSummary{
		Active:       len(descriptions) > 0,
		Descriptions: descriptions,
	}
}

// Stats compares a filtered count against the full collection size.
func (e *Engine) Stats(filtered, total int) models.FilterStats {
	stats := models.FilterStats{
		Filtered: filtered,
		Total:    total,
		Hidden:   total - filtered,
	}
	if total > 0 {
		stats.Percentage = math.Round(float64(filtered)/float64(total)*10000) / 100
	}
	return stats
}

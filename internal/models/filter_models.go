package models

import "time"

// AdvancedCriteria is the independent predicate set for range filtering.
// Nil bounds are unbounded.
type AdvancedCriteria struct {
	MinHarga          *float64   `json:"min_harga"`
	MaxHarga          *float64   `json:"max_harga"`
	MinStok           *float64   `json:"min_stok"`
	MaxStok           *float64   `json:"max_stok"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	LowStock          bool       `json:"low_stock"`
	LowStockThreshold *float64   `json:"low_stock_threshold"`
	OutOfStock        bool       `json:"out_of_stock"`
}

// FilterSnapshot is the round-trip representation of the engine's state.
// Key names are part of the persistence payload format and must not change.
type FilterSnapshot struct {
	SearchQuery string            `json:"searchQuery"`
	Filters     map[string]string `json:"filters"`
	Timestamp   time.Time         `json:"timestamp"`
}

// FilterSummary describes the currently active filters in readable form.
type FilterSummary struct {
	Active       bool     `json:"active"`
	Descriptions []string `json:"descriptions"`
}

// FilterStats compares the filtered view against the full collection.
type FilterStats struct {
	Filtered   int     `json:"filtered"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Hidden     int     `json:"hidden"`
}

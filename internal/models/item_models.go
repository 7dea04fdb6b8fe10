package models

import "time"

// Item represents one inventory record in the catalog.
type Item struct {
	ID         int64     `json:"id"`
	KodeItem   string    `json:"kode_item"`
	NamaItem   string    `json:"nama_item"`
	Barcode    string    `json:"barcode,omitempty"`
	Satuan     string    `json:"satuan,omitempty"`
	Rak        string    `json:"rak,omitempty"`
	Jenis      string    `json:"jenis,omitempty"`
	Merek      string    `json:"merek,omitempty"`
	Tipe       string    `json:"tipe,omitempty"`
	SystemHpp  string    `json:"system_hpp,omitempty"`
	StatusJual string    `json:"status_jual,omitempty"`
	Keterangan string    `json:"keterangan,omitempty"`
	Supplier   string    `json:"supplier,omitempty"`
	Stok       float64   `json:"stok"`
	StokMin    float64   `json:"stok_min"`
	HargaPokok float64   `json:"harga_pokok"`
	HargaJual  float64   `json:"harga_jual"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ItemPatch is an explicit partial update: nil fields are left untouched.
// ID and CreatedAt are deliberately absent; neither is patchable.
type ItemPatch struct {
	KodeItem   *string  `json:"kode_item"`
	NamaItem   *string  `json:"nama_item"`
	Barcode    *string  `json:"barcode"`
	Satuan     *string  `json:"satuan"`
	Rak        *string  `json:"rak"`
	Jenis      *string  `json:"jenis"`
	Merek      *string  `json:"merek"`
	Tipe       *string  `json:"tipe"`
	SystemHpp  *string  `json:"system_hpp"`
	StatusJual *string  `json:"status_jual"`
	Keterangan *string  `json:"keterangan"`
	Supplier   *string  `json:"supplier"`
	Stok       *float64 `json:"stok"`
	StokMin    *float64 `json:"stok_min"`
	HargaPokok *float64 `json:"harga_pokok"`
	HargaJual  *float64 `json:"harga_jual"`
}

// ImportRecord is one raw row of a bulk upload before validation and
// numeric coercion. Keys follow the Item JSON tags; values may be strings
// even for numeric fields.
type ImportRecord map[string]interface{}

// BatchImportResult summarizes a bulk upload. The batch always runs to
// completion; per-row failures land in Errors.
type BatchImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Errors   []string `json:"errors"`
}

// StockLevel classifies an item's stock against the fixed thresholds.
type StockLevel string

const (
	StockLevelOut    StockLevel = "habis"
	StockLevelLow    StockLevel = "rendah"
	StockLevelNormal StockLevel = "normal"
	StockLevelHigh   StockLevel = "tinggi"
)

// Fixed stock-level policy thresholds. Not configurable per store instance.
const (
	LowStockThreshold  = 10.0
	HighStockThreshold = 100.0
)

// ClassifyStock partitions any stock value into exactly one level:
// stok <= 0 habis, 0 < stok <= 10 rendah, 10 < stok <= 100 normal,
// stok > 100 tinggi.
func ClassifyStock(stok float64) StockLevel {
	switch {
	case stok <= 0:
		return StockLevelOut
	case stok <= LowStockThreshold:
		return StockLevelLow
	case stok <= HighStockThreshold:
		return StockLevelNormal
	default:
		return StockLevelHigh
	}
}

// NameCount is one entry of a top-N frequency ranking.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryStats aggregates one jenis group.
type CategoryStats struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// Stats is the aggregate view of the whole catalog.
type Stats struct {
	TotalItems      int                      `json:"total_items"`
	TotalValue      float64                  `json:"total_value"`
	LowStockCount   int                      `json:"low_stock_count"`
	OutOfStockCount int                      `json:"out_of_stock_count"`
	ByJenis         map[string]CategoryStats `json:"by_jenis"`
	TopJenis        []NameCount              `json:"top_jenis"`
	TopMerek        []NameCount              `json:"top_merek"`
}

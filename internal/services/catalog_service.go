package services

import (
	"errors"
	"fmt"
	"strings"

	"inventory_catalog_backend/internal/filter"
	"inventory_catalog_backend/internal/models"
	"inventory_catalog_backend/internal/store"
)

// --- Custom Service Errors for the Catalog ---
var (
	ErrItemNotFound = errors.New("item not found")
	ErrValidation   = errors.New("validation error")
)

// --- Item DTOs ---
type CreateItemRequest struct {
	ID         *int64  `json:"id"`
	KodeItem   string  `json:"kode_item" binding:"required"`
	NamaItem   string  `json:"nama_item" binding:"required"`
	Barcode    string  `json:"barcode"`
	Satuan     string  `json:"satuan"`
	Rak        string  `json:"rak"`
	Jenis      string  `json:"jenis"`
	Merek      string  `json:"merek"`
	Tipe       string  `json:"tipe"`
	SystemHpp  string  `json:"system_hpp"`
	StatusJual string  `json:"status_jual"`
	Keterangan string  `json:"keterangan"`
	Supplier   string  `json:"supplier"`
	Stok       float64 `json:"stok"`
	StokMin    float64 `json:"stok_min"`
	HargaPokok float64 `json:"harga_pokok"`
	HargaJual  float64 `json:"harga_jual"`
}

// ListItemsRequest carries the per-request view criteria. The named
// filters and query replace the engine state wholesale on every call.
type ListItemsRequest struct {
	Query    string
	Filters  map[string]string
	Advanced *models.AdvancedCriteria
	Page     int
	PageSize int
}

// ListItemsResult is one page of the filtered view plus its statistics.
type ListItemsResult struct {
	Items       []models.Item        `json:"items"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
	FilterStats models.FilterStats   `json:"filter_stats"`
	Summary     models.FilterSummary `json:"summary"`
}

// CreateItemResult wraps the stored item with a non-fatal duplicate-code
// warning. Code uniqueness is only enforced during import; direct creates
// surface the conflict without rejecting it.
type CreateItemResult struct {
	Item    *models.Item `json:"item"`
	Warning string       `json:"warning,omitempty"`
}

// --- CatalogService Interface ---
type CatalogService interface {
	CreateItem(req CreateItemRequest) (*CreateItemResult, error)
	GetItemByID(id int64) (*models.Item, error)
	ListItems(req ListItemsRequest) (*ListItemsResult, error)
	UpdateItem(id int64, patch models.ItemPatch) (*models.Item, error)
	DeleteItem(id int64) error
	SearchItems(query string) []models.Item
	GetStats() models.Stats
	ImportItems(rows []models.ImportRecord, overwrite bool) models.BatchImportResult
	FilteredView(req ListItemsRequest) []models.Item
	Engine() *filter.Engine
}

// --- catalogService Implementation ---
type catalogService struct {
	store  *store.ItemStore
	engine *filter.Engine
}

func NewCatalogService(st *store.ItemStore, eng *filter.Engine) CatalogService {
	return &catalogService{store: st, engine: eng}
}

func (s *catalogService) CreateItem(req CreateItemRequest) (*CreateItemResult, error) {
	kode := strings.TrimSpace(req.KodeItem)
	if kode == "" {
		return nil, fmt.Errorf("%w: kode_item cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(req.NamaItem) == "" {
		return nil, fmt.Errorf("%w: nama_item cannot be empty", ErrValidation)
	}
	if req.Stok < 0 || req.StokMin < 0 || req.HargaPokok < 0 || req.HargaJual < 0 {
		return nil, fmt.Errorf("%w: numeric fields cannot be negative", ErrValidation)
	}

	result := &CreateItemResult{}
	if existing, ok := s.store.GetByKode(kode); ok {
		result.Warning = fmt.Sprintf("kode_item %q is already used by item %d", kode, existing.ID)
	}

	rec := models.Item{
		KodeItem:   kode,
		NamaItem:   req.NamaItem,
		Barcode:    req.Barcode,
		Satuan:     req.Satuan,
		Rak:        req.Rak,
		Jenis:      req.Jenis,
		Merek:      req.Merek,
		Tipe:       req.Tipe,
		SystemHpp:  req.SystemHpp,
		StatusJual: req.StatusJual,
		Keterangan: req.Keterangan,
		Supplier:   req.Supplier,
		Stok:       req.Stok,
		StokMin:    req.StokMin,
		HargaPokok: req.HargaPokok,
		HargaJual:  req.HargaJual,
	}
	if req.ID != nil {
		rec.ID = *req.ID
	}
	result.Item = s.store.Add(rec)
	return result, nil
}

func (s *catalogService) GetItemByID(id int64) (*models.Item, error) {
	item, ok := s.store.GetByID(id)
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *catalogService) UpdateItem(id int64, patch models.ItemPatch) (*models.Item, error) {
	if patch.Stok != nil && *patch.Stok < 0 ||
		patch.StokMin != nil && *patch.StokMin < 0 ||
		patch.HargaPokok != nil && *patch.HargaPokok < 0 ||
		patch.HargaJual != nil && *patch.HargaJual < 0 {
		return nil, fmt.Errorf("%w: numeric fields cannot be negative", ErrValidation)
	}

	item, err := s.store.Update(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

func (s *catalogService) DeleteItem(id int64) error {
	if !s.store.Delete(id) {
		return ErrItemNotFound
	}
	return nil
}

func (s *catalogService) SearchItems(query string) []models.Item {
	return s.store.Search(query)
}

func (s *catalogService) GetStats() models.Stats {
	return s.store.Aggregate()
}

func (s *catalogService) ImportItems(rows []models.ImportRecord, overwrite bool) models.BatchImportResult {
	return s.store.ImportBatch(rows, overwrite)
}

func (s *catalogService) Engine() *filter.Engine {
	return s.engine
}

// FilteredView replaces the engine state with the request criteria and
// returns the full filtered sequence, unsliced. Export endpoints use it to
// dump exactly what the caller would see in the table.
func (s *catalogService) FilteredView(req ListItemsRequest) []models.Item {
	s.engine.ClearFilters()
	s.engine.SetQuery(req.Query)
	for field, value := range req.Filters {
		if filter.KnownFilterField(field) {
			s.engine.SetFilter(field, value)
		}
	}

	view := s.engine.Apply(s.store.GetAll())
	if req.Advanced != nil {
		view = s.engine.ApplyAdvanced(view, *req.Advanced)
	}
	return view
}

func (s *catalogService) ListItems(req ListItemsRequest) (*ListItemsResult, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	view := s.FilteredView(req)
	total := s.store.Len()

	start := (req.Page - 1) * req.PageSize
	if start > len(view) {
		start = len(view)
	}
	end := start + req.PageSize
	if end > len(view) {
		end = len(view)
	}

	return &ListItemsResult{
		Items:       view[start:end],
		Page:        req.Page,
		PageSize:    req.PageSize,
		FilterStats: s.engine.Stats(len(view), total),
		Summary:     s.engine.Summary(),
	}, nil
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"inventory_catalog_backend/internal/models"
	"inventory_catalog_backend/internal/services"
	"inventory_catalog_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DefaultDateLayout is the layout for the start_date/end_date params.
const DefaultDateLayout = "2006-01-02"

// namedFilterParams are the query parameters forwarded to the filter
// engine as named filters.
var namedFilterParams = []string{
	"jenis", "satuan", "status_jual", "system_hpp",
	"merek", "tipe", "rak", "supplier",
}

// ItemHandler holds the catalog service.
type ItemHandler struct {
	catalog services.CatalogService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(cs services.CatalogService) *ItemHandler {
	return &ItemHandler{catalog: cs}
}

// parseListParams builds the view criteria from query parameters. Shared
// by the listing and export endpoints so both see the same view.
func parseListParams(c *gin.Context) services.ListItemsRequest {
	req := services.ListItemsRequest{
		Query:   c.Query("q"),
		Filters: make(map[string]string),
	}
	for _, field := range namedFilterParams {
		if value := c.Query(field); value != "" {
			req.Filters[field] = value
		}
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		req.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil {
		req.PageSize = pageSize
	}

	req.Advanced = parseAdvancedCriteria(c)
	return req
}

func parseAdvancedCriteria(c *gin.Context) *models.AdvancedCriteria {
	var crit models.AdvancedCriteria
	active := false

	setFloat := func(param string, dst **float64) {
		if raw := c.Query(param); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				*dst = &v
				active = true
			}
		}
	}
	setFloat("min_harga", &crit.MinHarga)
	setFloat("max_harga", &crit.MaxHarga)
	setFloat("min_stok", &crit.MinStok)
	setFloat("max_stok", &crit.MaxStok)
	setFloat("low_stock_threshold", &crit.LowStockThreshold)

	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.ParseInLocation(DefaultDateLayout, raw, time.Local); err == nil {
			crit.StartDate = &t
			active = true
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.ParseInLocation(DefaultDateLayout, raw, time.Local); err == nil {
			// Inclusive end of day.
			end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
			crit.EndDate = &end
			active = true
		}
	}
	if c.Query("low_stock") == "true" {
		crit.LowStock = true
		active = true
	}
	if c.Query("out_of_stock") == "true" {
		crit.OutOfStock = true
		active = true
	}

	if !active {
		return nil
	}
	return &crit
}

// CreateItem handles creation of a new catalog item.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateItem: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.catalog.CreateItem(req)
	if err != nil {
		utils.LogError(err, "CreateItem: Error from catalog.CreateItem")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetItems returns one page of the filtered item view.
func (h *ItemHandler) GetItems(c *gin.Context) {
	result, err := h.catalog.ListItems(parseListParams(c))
	if err != nil {
		utils.LogError(err, "GetItems: Error from catalog.ListItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetItemByID fetches a single item.
func (h *ItemHandler) GetItemByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid item ID.", err.Error()))
		return
	}

	item, err := h.catalog.GetItemByID(id)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", err.Error()))
		} else {
			utils.LogError(err, "GetItemByID: Error from catalog.GetItemByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem applies a partial update to an existing item.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid item ID.", err.Error()))
		return
	}

	var patch models.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.LogError(err, "UpdateItem: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.catalog.UpdateItem(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found to update.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item data.", err.Error()))
		default:
			utils.LogError(err, "UpdateItem: Error from catalog.UpdateItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item from the catalog.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid item ID.", err.Error()))
		return
	}

	if err := h.catalog.DeleteItem(id); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found to delete.", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// GetStats returns catalog-wide aggregate statistics.
func (h *ItemHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.GetStats())
}

// ImportItemsRequest is the bulk upload payload.
type ImportItemsRequest struct {
	Rows      []models.ImportRecord `json:"rows" binding:"required"`
	Overwrite bool                  `json:"overwrite"`
}

// ImportItems bulk-ingests raw rows with per-row error reporting.
func (h *ItemHandler) ImportItems(c *gin.Context) {
	var req ImportItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ImportItems: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result := h.catalog.ImportItems(req.Rows, req.Overwrite)
	utils.LogInfo("Import batch completed", map[string]interface{}{
		"imported": result.Imported,
		"updated":  result.Updated,
		"errors":   len(result.Errors),
	})
	c.JSON(http.StatusOK, result)
}

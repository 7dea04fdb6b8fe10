package handlers

import (
	"errors"
	"net/http"

	"inventory_catalog_backend/internal/database"
	"inventory_catalog_backend/internal/filter"
	"inventory_catalog_backend/internal/models"
	"inventory_catalog_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FilterHandler exposes the filter engine state and its persistence.
type FilterHandler struct {
	engine    *filter.Engine
	snapshots filter.SnapshotStore
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(eng *filter.Engine, kv filter.SnapshotStore) *FilterHandler {
	return &FilterHandler{engine: eng, snapshots: kv}
}

// GetFilterState returns the current filter criteria as a snapshot.
func (h *FilterHandler) GetFilterState(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Snapshot())
}

// PutFilterState replaces the filter state wholesale and persists it.
// A persistence failure is non-fatal: the new state is kept in memory and
// the response reports persisted=false.
func (h *FilterHandler) PutFilterState(c *gin.Context) {
	var snap models.FilterSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		utils.LogError(err, "PutFilterState: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	h.engine.Restore(snap)

	persisted := true
	if err := h.engine.SaveTo(h.snapshots); err != nil {
		utils.LogWarn("PutFilterState: failed to persist filter state", map[string]interface{}{"error": err.Error()})
		persisted = false
	}
	c.JSON(http.StatusOK, gin.H{
		"state":     h.engine.Snapshot(),
		"persisted": persisted,
	})
}

// LoadFilterState restores the persisted snapshot, if any. A missing or
// malformed snapshot leaves the current state unchanged.
func (h *FilterHandler) LoadFilterState(c *gin.Context) {
	loaded, err := h.engine.LoadFrom(h.snapshots)
	if err != nil && !errors.Is(err, database.ErrNoSnapshot) {
		utils.LogWarn("LoadFilterState: failed to read persisted filter state", map[string]interface{}{"error": err.Error()})
	}
	c.JSON(http.StatusOK, gin.H{
		"state":  h.engine.Snapshot(),
		"loaded": loaded,
	})
}

// ClearFilterState drops the query and every named filter.
func (h *FilterHandler) ClearFilterState(c *gin.Context) {
	h.engine.ClearFilters()
	c.JSON(http.StatusOK, h.engine.Snapshot())
}

// GetFilterSummary describes the active filters in readable form.
func (h *FilterHandler) GetFilterSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Summary())
}

package handlers

import (
	"net/http"

	"inventory_catalog_backend/internal/services"
	"inventory_catalog_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ExportHandler formats the filtered item view for download. Exports use
// the same query parameters as the listing endpoint, unpaged.
type ExportHandler struct {
	catalog services.CatalogService
	export  services.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(cs services.CatalogService, es services.ExportService) *ExportHandler {
	return &ExportHandler{catalog: cs, export: es}
}

// ExportCSV streams the filtered view as a CSV download.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	items := h.catalog.FilteredView(parseListParams(c))
	payload, err := h.export.CSV(items)
	if err != nil {
		utils.LogError(err, "ExportCSV: Failed to build CSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export CSV.", "Internal error"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="daftar-item.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// ExportJSON streams the filtered view as a JSON download.
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	items := h.catalog.FilteredView(parseListParams(c))
	payload, err := h.export.JSON(items)
	if err != nil {
		utils.LogError(err, "ExportJSON: Failed to marshal items")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export JSON.", "Internal error"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="daftar-item.json"`)
	c.Data(http.StatusOK, "application/json", payload)
}

// ExportXLSX streams the filtered view as a styled workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	items := h.catalog.FilteredView(parseListParams(c))
	payload, err := h.export.XLSX(items)
	if err != nil {
		utils.LogError(err, "ExportXLSX: Failed to build workbook")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export XLSX.", "Internal error"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="daftar-item.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

// ExportPrint renders the filtered view as a print-formatted HTML report.
func (h *ExportHandler) ExportPrint(c *gin.Context) {
	items := h.catalog.FilteredView(parseListParams(c))
	payload, err := h.export.PrintHTML(items, h.catalog.GetStats())
	if err != nil {
		utils.LogError(err, "ExportPrint: Failed to render report")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to render print report.", "Internal error"))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", payload)
}

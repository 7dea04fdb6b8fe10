package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"inventory_catalog_backend/internal/models"
)

func exportFixture() []models.Item {
	return []models.Item{
		{ID: 1, KodeItem: "AS01", NamaItem: "Gizeh Slim", Jenis: "ASR", Stok: 19, HargaJual: 15000},
		{ID: 2, KodeItem: "PR001", NamaItem: "Filter <Tip>", Jenis: "PRM", Stok: 45, HargaJual: 30000},
	}
}

func TestCSVExport(t *testing.T) {
	payload, err := NewExportService().CSV(exportFixture())
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Kode Item" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "AS01" || records[1][11] != "19" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
}

func TestJSONExportRoundTrips(t *testing.T) {
	payload, err := NewExportService().JSON(exportFixture())
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var items []models.Item
	if err := json.Unmarshal(payload, &items); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(items) != 2 || items[0].KodeItem != "AS01" {
		t.Fatalf("round trip differs: %+v", items)
	}
}

func TestXLSXExport(t *testing.T) {
	payload, err := NewExportService().XLSX(exportFixture())
	if err != nil {
		t.Fatalf("XLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue(exportSheet, "A1")
	if err != nil || header != "Kode Item" {
		t.Fatalf("A1 = %q, err %v", header, err)
	}
	first, _ := f.GetCellValue(exportSheet, "A2")
	if first != "AS01" {
		t.Fatalf("A2 = %q, want AS01", first)
	}
}

func TestPrintHTMLEscapesAndIncludesStats(t *testing.T) {
	stats := models.Stats{TotalItems: 2, TotalValue: 1234.5, LowStockCount: 1}
	payload, err := NewExportService().PrintHTML(exportFixture(), stats)
	if err != nil {
		t.Fatalf("PrintHTML failed: %v", err)
	}

	html := string(payload)
	if !strings.Contains(html, "Gizeh Slim") {
		t.Fatal("report missing item name")
	}
	if strings.Contains(html, "<Tip>") {
		t.Fatal("item fields must be HTML-escaped")
	}
	if !strings.Contains(html, "1234.50") {
		t.Fatal("report missing total value")
	}
}

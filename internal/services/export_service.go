package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"inventory_catalog_backend/internal/models"
)

// exportColumns fixes the column order for tabular exports.
var exportColumns = []string{
	"Kode Item", "Nama Item", "Barcode", "Satuan", "Rak", "Jenis", "Merek",
	"Tipe", "System HPP", "Status Jual", "Supplier", "Stok", "Stok Min",
	"Harga Pokok", "Harga Jual", "Keterangan",
}

func exportRow(it *models.Item) []string {
	return []string{
		it.KodeItem, it.NamaItem, it.Barcode, it.Satuan, it.Rak, it.Jenis,
		it.Merek, it.Tipe, it.SystemHpp, it.StatusJual, it.Supplier,
		strconv.FormatFloat(it.Stok, 'f', -1, 64),
		strconv.FormatFloat(it.StokMin, 'f', -1, 64),
		strconv.FormatFloat(it.HargaPokok, 'f', -1, 64),
		strconv.FormatFloat(it.HargaJual, 'f', -1, 64),
		it.Keterangan,
	}
}

// ExportService formats item sequences for download. It consumes but
// never mutates catalog state.
type ExportService interface {
	CSV(items []models.Item) ([]byte, error)
	JSON(items []models.Item) ([]byte, error)
	XLSX(items []models.Item) ([]byte, error)
	PrintHTML(items []models.Item, stats models.Stats) ([]byte, error)
}

type exportService struct{}

func NewExportService() ExportService {
	return exportService{}
}

func (exportService) CSV(items []models.Item) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range items {
		if err := w.Write(exportRow(&items[i])); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (exportService) JSON(items []models.Item) ([]byte, error) {
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal items: %w", err)
	}
	return payload, nil
}

const exportSheet = "Daftar Item"

func (exportService) XLSX(items []models.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, col)
		f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	for r := range items {
		row := exportRow(&items[r])
		for i, value := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(exportSheet, cell, value)
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.AutoFilter(exportSheet, "A1:"+lastHeader, []excelize.AutoFilterOptions{})
	f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, Split: true, YSplit: 1})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Laporan Daftar Item</title>
<style>
body { font-family: sans-serif; margin: 24px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #444; padding: 4px 8px; font-size: 12px; }
th { background: #eee; }
.meta { color: #555; font-size: 12px; margin-bottom: 12px; }
</style>
</head>
<body>
<h1>Laporan Daftar Item</h1>
<p class="meta">Dicetak: {{.GeneratedAt}} &mdash; {{.Stats.TotalItems}} item, total nilai {{printf "%.2f" .Stats.TotalValue}}</p>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<p class="meta">Stok rendah: {{.Stats.LowStockCount}} &mdash; Stok habis: {{.Stats.OutOfStockCount}}</p>
</body>
</html>
`))

func (exportService) PrintHTML(items []models.Item, stats models.Stats) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for i := range items {
		rows = append(rows, exportRow(&items[i]))
	}

	data := struct {
		GeneratedAt string
		Columns     []string
		Rows        [][]string
		Stats       models.Stats
	}{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Columns:     exportColumns,
		Rows:        rows,
		Stats:       stats,
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render print report: %w", err)
	}
	return buf.Bytes(), nil
}

package store

import (
	"fmt"

	"inventory_catalog_backend/internal/models"
	"inventory_catalog_backend/pkg/utils"
)

// ImportBatch bulk-ingests raw rows. Each row needs a kode_item or an id;
// an existing match is updated when overwrite is true and reported as an
// error otherwise. Numeric fields are coerced from strings (invalid -> 0).
// The batch always runs to completion; failures never abort it.
func (s *ItemStore) ImportBatch(rows []models.ImportRecord, overwrite bool) models.BatchImportResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := models.BatchImportResult{Errors: []string{}}

	for i, row := range rows {
		kode := utils.ToString(row["kode_item"])
		id := utils.ToInt64(row["id"])
		if kode == "" && id == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("baris %d: kode_item atau id wajib diisi", i+1))
			continue
		}

		existing := s.resolveLocked(id, kode)
		if existing != nil {
			if !overwrite {
				result.Errors = append(result.Errors, fmt.Sprintf("baris %d: item dengan kode %q sudah ada", i+1, existing.KodeItem))
				continue
			}
			if _, err := s.updateLocked(existing.ID, patchFromRecord(row)); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("baris %d: %v", i+1, err))
				continue
			}
			result.Updated++
			continue
		}

		s.addLocked(itemFromRecord(row))
		result.Imported++
	}

	return result
}

// resolveLocked finds an existing item by id first, then by exact kode.
func (s *ItemStore) resolveLocked(id int64, kode string) *models.Item {
	if id > 0 {
		if it, ok := s.items[id]; ok {
			return it
		}
	}
	if kode != "" {
		for _, oid := range s.order {
			if s.items[oid].KodeItem == kode {
				return s.items[oid]
			}
		}
	}
	return nil
}

var stringFields = []string{
	"kode_item", "nama_item", "barcode", "satuan", "rak", "jenis",
	"merek", "tipe", "system_hpp", "status_jual", "keterangan", "supplier",
}

var numericFields = []string{"stok", "stok_min", "harga_pokok", "harga_jual"}

func itemFromRecord(row models.ImportRecord) models.Item {
	var it models.Item
	it.ID = utils.ToInt64(row["id"])
	applyString := map[string]*string{
		"kode_item": &it.KodeItem, "nama_item": &it.NamaItem,
		"barcode": &it.Barcode, "satuan": &it.Satuan, "rak": &it.Rak,
		"jenis": &it.Jenis, "merek": &it.Merek, "tipe": &it.Tipe,
		"system_hpp": &it.SystemHpp, "status_jual": &it.StatusJual,
		"keterangan": &it.Keterangan, "supplier": &it.Supplier,
	}
	applyNumeric := map[string]*float64{
		"stok": &it.Stok, "stok_min": &it.StokMin,
		"harga_pokok": &it.HargaPokok, "harga_jual": &it.HargaJual,
	}
	for _, key := range stringFields {
		if raw, ok := row[key]; ok {
			*applyString[key] = utils.ToString(raw)
		}
	}
	for _, key := range numericFields {
		if raw, ok := row[key]; ok {
			*applyNumeric[key] = utils.ToFloat(raw)
		}
	}
	return it
}

// patchFromRecord builds a partial update touching only the keys present
// in the row, so an overwrite import leaves unmentioned fields alone.
func patchFromRecord(row models.ImportRecord) models.ItemPatch {
	var p models.ItemPatch
	applyString := map[string]**string{
		"kode_item": &p.KodeItem, "nama_item": &p.NamaItem,
		"barcode": &p.Barcode, "satuan": &p.Satuan, "rak": &p.Rak,
		"jenis": &p.Jenis, "merek": &p.Merek, "tipe": &p.Tipe,
		"system_hpp": &p.SystemHpp, "status_jual": &p.StatusJual,
		"keterangan": &p.Keterangan, "supplier": &p.Supplier,
	}
	applyNumeric := map[string]**float64{
		"stok": &p.Stok, "stok_min": &p.StokMin,
		"harga_pokok": &p.HargaPokok, "harga_jual": &p.HargaJual,
	}
	for _, key := range stringFields {
		if raw, ok := row[key]; ok {
			v := utils.ToString(raw)
			*applyString[key] = &v
		}
	}
	for _, key := range numericFields {
		if raw, ok := row[key]; ok {
			v := utils.ToFloat(raw)
			*applyNumeric[key] = &v
		}
	}
	return p
}

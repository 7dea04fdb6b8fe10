package store

import (
	"testing"

	"inventory_catalog_backend/internal/models"
)

func TestClassifyStockIsTotalPartition(t *testing.T) {
	cases := []struct {
		stok float64
		want models.StockLevel
	}{
		{-5, models.StockLevelOut},
		{0, models.StockLevelOut},
		{0.5, models.StockLevelLow},
		{10, models.StockLevelLow},
		{10.1, models.StockLevelNormal},
		{100, models.StockLevelNormal},
		{100.5, models.StockLevelHigh},
		{1000, models.StockLevelHigh},
	}
	for _, tc := range cases {
		if got := models.ClassifyStock(tc.stok); got != tc.want {
			t.Errorf("ClassifyStock(%v) = %v, want %v", tc.stok, got, tc.want)
		}
	}
}

func TestAggregateTotalsAndGrouping(t *testing.T) {
	s := NewItemStore()
	s.Add(models.Item{KodeItem: "A", Jenis: "ASR", Merek: "Gizeh", Stok: 5, HargaPokok: 100})
	s.Add(models.Item{KodeItem: "B", Jenis: "ASR", Merek: "Gizeh", Stok: 0, HargaPokok: 50})
	s.Add(models.Item{KodeItem: "C", Jenis: "PRM", Merek: "Ventti", Stok: 200, HargaPokok: 10})

	stats := s.Aggregate()

	if stats.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3", stats.TotalItems)
	}
	if want := 5*100.0 + 0*50.0 + 200*10.0; stats.TotalValue != want {
		t.Fatalf("TotalValue = %v, want %v", stats.TotalValue, want)
	}
	if stats.LowStockCount != 1 {
		t.Fatalf("LowStockCount = %d, want 1", stats.LowStockCount)
	}
	if stats.OutOfStockCount != 1 {
		t.Fatalf("OutOfStockCount = %d, want 1", stats.OutOfStockCount)
	}

	asr := stats.ByJenis["ASR"]
	if asr.Count != 2 || asr.Value != 500 {
		t.Fatalf("ByJenis[ASR] = %+v, want count 2 value 500", asr)
	}

	if len(stats.TopJenis) == 0 || stats.TopJenis[0].Name != "ASR" || stats.TopJenis[0].Count != 2 {
		t.Fatalf("TopJenis = %v, want ASR first with count 2", stats.TopJenis)
	}
	if len(stats.TopMerek) == 0 || stats.TopMerek[0].Name != "Gizeh" {
		t.Fatalf("TopMerek = %v, want Gizeh first", stats.TopMerek)
	}
}

func TestAggregateEmptyStore(t *testing.T) {
	stats := NewItemStore().Aggregate()
	if stats.TotalItems != 0 || stats.TotalValue != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if len(stats.TopJenis) != 0 || len(stats.TopMerek) != 0 {
		t.Fatal("expected empty rankings for empty store")
	}
}

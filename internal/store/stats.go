package store

import (
	"sort"

	"inventory_catalog_backend/internal/models"
)

// topNLimit caps the frequency rankings in Aggregate.
const topNLimit = 5

// Aggregate computes catalog-wide statistics: totals, stock-level counts,
// per-jenis grouping and top-N jenis/merek by frequency.
func (s *ItemStore) Aggregate() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{
		TotalItems: len(s.order),
		ByJenis:    make(map[string]models.CategoryStats),
	}
	merekCounts := make(map[string]int)

	for _, id := range s.order {
		it := s.items[id]
		value := it.Stok * it.HargaPokok
		stats.TotalValue += value

		switch models.ClassifyStock(it.Stok) {
		case models.StockLevelOut:
			stats.OutOfStockCount++
		case models.StockLevelLow:
			stats.LowStockCount++
		}

		if it.Jenis != "" {
			cs := stats.ByJenis[it.Jenis]
			cs.Count++
			cs.Value += value
			stats.ByJenis[it.Jenis] = cs
		}
		if it.Merek != "" {
			merekCounts[it.Merek]++
		}
	}

	jenisCounts := make(map[string]int, len(stats.ByJenis))
	for jenis, cs := range stats.ByJenis {
		jenisCounts[jenis] = cs.Count
	}
	stats.TopJenis = topN(jenisCounts, topNLimit)
	stats.TopMerek = topN(merekCounts, topNLimit)

	return stats
}

// topN ranks counts descending, breaking ties by name for a stable result.
func topN(counts map[string]int, n int) []models.NameCount {
	ranked := make([]models.NameCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, models.NameCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

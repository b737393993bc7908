package service

import (
	"github.com/jeovahfialho/trade-dashboard/internal/domain"
)

// FilterTrades keeps the records inside rng that carry a P/L value, with normalized
// symbols, in their original order. An empty result is not an error.
func FilterTrades(records []domain.TradeRecord, rng domain.DateRange) []domain.TradeRecord {
	kept, _ := filterTrades(records, rng)
	return kept
}

func filterTrades(records []domain.TradeRecord, rng domain.DateRange) ([]domain.TradeRecord, domain.DropStats) {
	var stats domain.DropStats
	kept := make([]domain.TradeRecord, 0, len(records))

	lower, upper := rng.Lower(), rng.Upper()

	for _, rec := range records {
		if rec.Timestamp.Before(lower) || rec.Timestamp.After(upper) {
			stats.OutOfRange++
			continue
		}
		if !rec.HasPL() {
			stats.MissingPL++
			continue
		}

		rec.Symbol = NormalizeSymbol(rec.Symbol)
		kept = append(kept, rec)
	}

	return kept, stats
}

package service

import (
	"github.com/jeovahfialho/trade-dashboard/internal/domain"
)

// ComputeKPIs reduces a cleaned trade set to the dashboard indicators. Every value has a
// neutral default for an empty set; BestTrade and WorstTrade are nil then.
func ComputeKPIs(trades []domain.TradeRecord) domain.KPIs {
	kpis := domain.KPIs{
		TotalSignals:     len(trades),
		WinRate:          WinRate(trades),
		AvgWin:           AverageWin(trades),
		AvgLoss:          AverageLoss(trades),
		MostTradedSymbol: MostTradedSymbol(trades),
	}

	if best, ok := BestTrade(trades); ok {
		kpis.BestTrade = &best
	}
	if worst, ok := WorstTrade(trades); ok {
		kpis.WorstTrade = &worst
	}

	return kpis
}

// WinRate is the percentage of trades labelled "win", 0 for an empty set.
func WinRate(trades []domain.TradeRecord) float64 {
	if len(trades) == 0 {
		return 0
	}

	wins := 0
	for _, t := range trades {
		if t.Result == domain.ResultWin {
			wins++
		}
	}
	return 100 * float64(wins) / float64(len(trades))
}

func AverageWin(trades []domain.TradeRecord) float64 {
	return meanPL(trades, domain.ResultWin)
}

func AverageLoss(trades []domain.TradeRecord) float64 {
	return meanPL(trades, domain.ResultLoss)
}

func meanPL(trades []domain.TradeRecord, result string) float64 {
	var sum float64
	n := 0
	for _, t := range trades {
		if t.Result != result || !t.HasPL() {
			continue
		}
		sum += *t.PL
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MostTradedSymbol returns the most frequent non-empty symbol. Ties go to the symbol seen
// first; domain.NoSymbol is returned when there is nothing to count.
func MostTradedSymbol(trades []domain.TradeRecord) string {
	counts := make(map[string]int)
	var order []string

	for _, t := range trades {
		if t.Symbol == "" {
			continue
		}
		if counts[t.Symbol] == 0 {
			order = append(order, t.Symbol)
		}
		counts[t.Symbol]++
	}

	best, bestCount := domain.NoSymbol, 0
	for _, sym := range order {
		if counts[sym] > bestCount {
			best, bestCount = sym, counts[sym]
		}
	}

	return best
}

// BestTrade returns the first trade holding the highest P/L.
func BestTrade(trades []domain.TradeRecord) (domain.TradeRecord, bool) {
	return extremeTrade(trades, func(a, b float64) bool { return a > b })
}

// WorstTrade returns the first trade holding the lowest P/L.
func WorstTrade(trades []domain.TradeRecord) (domain.TradeRecord, bool) {
	return extremeTrade(trades, func(a, b float64) bool { return a < b })
}

func extremeTrade(trades []domain.TradeRecord, better func(a, b float64) bool) (domain.TradeRecord, bool) {
	idx := -1
	for i, t := range trades {
		if !t.HasPL() {
			continue
		}
		if idx < 0 || better(*t.PL, *trades[idx].PL) {
			idx = i
		}
	}
	if idx < 0 {
		return domain.TradeRecord{}, false
	}
	return trades[idx], true
}

package service

import (
	"math"

	"github.com/jeovahfialho/trade-dashboard/internal/domain"
)

const DefaultHistogramBins = 40

// BuildHistogram splits the finite P/L values into equal-width bins between the smallest
// and largest value. The last bin includes its upper edge.
func BuildHistogram(trades []domain.TradeRecord, bins int) []domain.HistogramBin {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	values := make([]float64, 0, len(trades))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range trades {
		if !t.HasPL() || math.IsInf(*t.PL, 0) || math.IsNaN(*t.PL) {
			continue
		}
		v := *t.PL
		values = append(values, v)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if len(values) == 0 {
		return []domain.HistogramBin{}
	}
	if lo == hi {
		return []domain.HistogramBin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	// scaled separately so that hi-lo cannot overflow for extreme finite values
	width := hi/float64(bins) - lo/float64(bins)
	if width <= 0 || math.IsInf(width, 0) || math.IsNaN(width) {
		return []domain.HistogramBin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	hist := make([]domain.HistogramBin, bins)
	for i := range hist {
		hist[i].Lower = binEdge(lo, hi, i, bins)
		hist[i].Upper = binEdge(lo, hi, i+1, bins)
	}

	for _, v := range values {
		idx := int(math.Floor(v/width - lo/width))
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		hist[idx].Count++
	}

	return hist
}

func binEdge(lo, hi float64, i, bins int) float64 {
	if i >= bins {
		return hi
	}
	f := float64(i) / float64(bins)
	return lo*(1-f) + hi*f
}

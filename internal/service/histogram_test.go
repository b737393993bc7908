package service

import (
	"math"
	"testing"
	"time"

	"github.com/jeovahfialho/trade-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradesWithPL(values ...float64) []domain.TradeRecord {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.TradeRecord, 0, len(values))
	for _, v := range values {
		out = append(out, trade(ts, "X", pl(v), "win"))
	}
	return out
}

func TestBuildHistogram(t *testing.T) {
	hist := BuildHistogram(tradesWithPL(-10, -5, 0, 5, 10), 4)

	require.Len(t, hist, 4)
	assert.Equal(t, domain.HistogramBin{Lower: -10, Upper: -5, Count: 1}, hist[0])
	assert.Equal(t, domain.HistogramBin{Lower: -5, Upper: 0, Count: 1}, hist[1])
	assert.Equal(t, domain.HistogramBin{Lower: 0, Upper: 5, Count: 1}, hist[2])
	assert.Equal(t, domain.HistogramBin{Lower: 5, Upper: 10, Count: 2}, hist[3], "max lands in the last bin")
}

func TestBuildHistogram_CountsEveryValue(t *testing.T) {
	values := make([]float64, 0, 500)
	for i := 0; i < 500; i++ {
		values = append(values, math.Sin(float64(i))*37.5)
	}

	hist := BuildHistogram(tradesWithPL(values...), 0)
	require.Len(t, hist, DefaultHistogramBins)

	total := 0
	for i, bin := range hist {
		total += bin.Count
		assert.Less(t, bin.Lower, bin.Upper)
		if i > 0 {
			assert.InDelta(t, hist[i-1].Upper, bin.Lower, 1e-9)
		}
	}
	assert.Equal(t, 500, total)
}

func TestBuildHistogram_Degenerate(t *testing.T) {
	assert.Empty(t, BuildHistogram(nil, 10))

	withGaps := append(tradesWithPL(math.Inf(1)), domain.TradeRecord{})
	assert.Empty(t, BuildHistogram(withGaps, 10))

	single := BuildHistogram(tradesWithPL(2.5, 2.5, 2.5), 10)
	require.Len(t, single, 1)
	assert.Equal(t, domain.HistogramBin{Lower: 2.5, Upper: 2.5, Count: 3}, single[0])
}

func TestBuildHistogram_ExtremeFiniteValues(t *testing.T) {
	hist := BuildHistogram(tradesWithPL(-1e308, 0, 1e308), DefaultHistogramBins)

	require.Len(t, hist, DefaultHistogramBins)
	assert.Equal(t, -1e308, hist[0].Lower)
	assert.Equal(t, 1e308, hist[len(hist)-1].Upper)

	total := 0
	for _, bin := range hist {
		assert.False(t, math.IsInf(bin.Lower, 0) || math.IsNaN(bin.Lower))
		assert.False(t, math.IsInf(bin.Upper, 0) || math.IsNaN(bin.Upper))
		total += bin.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, hist[0].Count)
	assert.Equal(t, 1, hist[len(hist)-1].Count)
}

func TestBuildHistogram_MaxFloatRange(t *testing.T) {
	hist := BuildHistogram(tradesWithPL(-math.MaxFloat64, math.MaxFloat64), 4)

	require.Len(t, hist, 4)
	assert.Equal(t, 1, hist[0].Count)
	assert.Equal(t, 1, hist[3].Count)
}

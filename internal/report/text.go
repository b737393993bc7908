package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jeovahfialho/trade-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	barWidth        = 40
	noData          = "no data"
)

type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render prints the KPI panel, the P/L distribution, the best and worst trades and the
// trade table, newest first.
func (r *TextRenderer) Render(d *domain.Dashboard) error {
	if d == nil {
		d = &domain.Dashboard{KPIs: domain.KPIs{MostTradedSymbol: domain.NoSymbol}}
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "📊 Trade Signal Dashboard\n")
	fmt.Fprintf(tw, "📅 Range: %s\n\n", d.Range)

	fmt.Fprintf(tw, "📨 Total Signals\t%d\n", d.KPIs.TotalSignals)
	fmt.Fprintf(tw, "✅ Win Rate (%%)\t%s\n", fixed(d.KPIs.WinRate, 2))
	fmt.Fprintf(tw, "📈 Avg Win\t%s\n", fixed(d.KPIs.AvgWin, 4))
	fmt.Fprintf(tw, "📉 Avg Loss\t%s\n", fixed(d.KPIs.AvgLoss, 4))
	fmt.Fprintf(tw, "💱 Most Traded Pair\t%s\n", d.KPIs.MostTradedSymbol)

	if d.Dropped.OutOfRange > 0 || d.Dropped.MissingPL > 0 {
		fmt.Fprintf(tw, "🧹 Dropped\t%d out of range, %d missing P/L\n", d.Dropped.OutOfRange, d.Dropped.MissingPL)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if d.Empty() {
		fmt.Fprintln(r.w, "\n⚠️  No trades in the selected range.")
	}

	if err := r.renderHistogram(d.Histogram); err != nil {
		return err
	}
	if err := r.renderExtremes(d.KPIs); err != nil {
		return err
	}
	return r.renderTrades(d.Trades)
}

func (r *TextRenderer) renderHistogram(bins []domain.HistogramBin) error {
	fmt.Fprintln(r.w, "\n📊 Profit/Loss Distribution")
	if len(bins) == 0 {
		_, err := fmt.Fprintf(r.w, "   %s\n", noData)
		return err
	}

	peak := 0
	for _, b := range bins {
		if b.Count > peak {
			peak = b.Count
		}
	}

	for i, b := range bins {
		closing := ")"
		if i == len(bins)-1 {
			closing = "]"
		}
		bar := 0
		if peak > 0 {
			bar = int(math.Round(float64(b.Count) / float64(peak) * barWidth))
		}
		if b.Count > 0 && bar == 0 {
			bar = 1
		}
		_, err := fmt.Fprintf(r.w, "   [%10s, %10s%s %s %d\n",
			fixed(b.Lower, 2), fixed(b.Upper, 2), closing,
			padRight(strings.Repeat("█", bar), barWidth), b.Count)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderExtremes(kpis domain.KPIs) error {
	fmt.Fprintln(r.w, "\n🏆 Best & Worst Trades")

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "   Best Trade\t%s\n", tradeSummary(kpis.BestTrade))
	fmt.Fprintf(tw, "   Worst Trade\t%s\n", tradeSummary(kpis.WorstTrade))
	return tw.Flush()
}

func (r *TextRenderer) renderTrades(trades []domain.TradeRecord) error {
	fmt.Fprintf(r.w, "\n📋 All Trades (%d)\n", len(trades))
	if len(trades) == 0 {
		_, err := fmt.Fprintf(r.w, "   %s\n", noData)
		return err
	}

	sorted := SortByTimestampDesc(trades)

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tSYMBOL\tTYPE\tP/L\tRESULT")
	for _, t := range sorted {
		pl := "-"
		if t.HasPL() {
			pl = fixed(*t.PL, 2)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.Timestamp.Format(timestampLayout), t.Symbol, t.Type, pl, t.Result)
	}
	return tw.Flush()
}

// SortByTimestampDesc returns a copy of trades ordered newest first. Equal timestamps keep
// their source order.
func SortByTimestampDesc(trades []domain.TradeRecord) []domain.TradeRecord {
	sorted := make([]domain.TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}

func tradeSummary(t *domain.TradeRecord) string {
	if t == nil || !t.HasPL() {
		return noData
	}
	return fmt.Sprintf("%s %s → %s", t.Symbol, t.Type, fixed(*t.PL, 2))
}

// fixed formats v with a fixed number of decimal places, rounding half away from zero.
func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

package domain

// NoSymbol is reported as the most traded symbol when there is nothing to count.
const NoSymbol = "N/A"

type KPIs struct {
	TotalSignals     int          `json:"total_signals" yaml:"total_signals"`
	WinRate          float64      `json:"win_rate" yaml:"win_rate"`
	AvgWin           float64      `json:"avg_win" yaml:"avg_win"`
	AvgLoss          float64      `json:"avg_loss" yaml:"avg_loss"`
	MostTradedSymbol string       `json:"most_traded_symbol" yaml:"most_traded_symbol"`
	BestTrade        *TradeRecord `json:"best_trade,omitempty" yaml:"best_trade,omitempty"`
	WorstTrade       *TradeRecord `json:"worst_trade,omitempty" yaml:"worst_trade,omitempty"`
}

type HistogramBin struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Count int     `json:"count" yaml:"count"`
}

// DropStats counts records removed by the filter stage.
type DropStats struct {
	OutOfRange int `json:"out_of_range" yaml:"out_of_range"`
	MissingPL  int `json:"missing_pl" yaml:"missing_pl"`
}

type Dashboard struct {
	Range     DateRange      `json:"range" yaml:"range"`
	Trades    []TradeRecord  `json:"trades" yaml:"trades"`
	KPIs      KPIs           `json:"kpis" yaml:"kpis"`
	Histogram []HistogramBin `json:"histogram" yaml:"histogram"`
	Dropped   DropStats      `json:"dropped" yaml:"dropped"`
}

// Empty reports whether no trade survived filtering.
func (d *Dashboard) Empty() bool {
	return d == nil || len(d.Trades) == 0
}

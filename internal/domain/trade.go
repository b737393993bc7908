package domain

import (
	"time"
)

const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

// DateLayout is the calendar date format accepted for range bounds.
const DateLayout = "2006-01-02"

type TradeRecord struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Symbol    string    `json:"symbol" yaml:"symbol"`
	Type      string    `json:"type" yaml:"type"`
	PL        *float64  `json:"pl" yaml:"pl"`
	Result    string    `json:"result" yaml:"result"`
}

// HasPL reports whether the row carries a profit/loss value.
func (t TradeRecord) HasPL() bool {
	return t.PL != nil
}

// ProfitLoss returns the P/L value, or zero when it is missing.
func (t TradeRecord) ProfitLoss() float64 {
	if t.PL == nil {
		return 0
	}
	return *t.PL
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

// ParseDateRange parses two YYYY-MM-DD dates.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return DateRange{}, err
	}
	e, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e), nil
}

// Lower is the first instant of Start.
func (r DateRange) Lower() time.Time {
	return truncateDay(r.Start)
}

// Upper is the last microsecond of End (23:59:59.999999).
func (r DateRange) Upper() time.Time {
	return truncateDay(r.End).Add(24*time.Hour - time.Microsecond)
}

func (r DateRange) Contains(ts time.Time) bool {
	return !ts.Before(r.Lower()) && !ts.After(r.Upper())
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + " → " + r.End.Format(DateLayout)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

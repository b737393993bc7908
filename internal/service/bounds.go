package service

import (
	"fmt"
	"time"

	"github.com/jeovahfialho/trade-dashboard/internal/domain"
)

// DataRange returns the calendar dates of the earliest and latest record.
func DataRange(records []domain.TradeRecord) (domain.DateRange, bool) {
	if len(records) == 0 {
		return domain.DateRange{}, false
	}

	lo, hi := records[0].Timestamp, records[0].Timestamp
	for _, r := range records[1:] {
		if r.Timestamp.Before(lo) {
			lo = r.Timestamp
		}
		if r.Timestamp.After(hi) {
			hi = r.Timestamp
		}
	}

	return domain.NewDateRange(lo, hi), true
}

// ResolveRange parses the optional YYYY-MM-DD bounds, defaulting each missing one to the
// dataset's first or last date.
func ResolveRange(records []domain.TradeRecord, start, end string) (domain.DateRange, error) {
	rng, _ := DataRange(records)

	if start != "" {
		s, err := time.ParseInLocation(domain.DateLayout, start, time.UTC)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid start date %q (use YYYY-MM-DD): %w", start, err)
		}
		rng.Start = s
	}
	if end != "" {
		e, err := time.ParseInLocation(domain.DateLayout, end, time.UTC)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid end date %q (use YYYY-MM-DD): %w", end, err)
		}
		rng.End = e
	}

	return domain.NewDateRange(rng.Start, rng.End), nil
}

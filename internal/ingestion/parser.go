package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/jeovahfialho/trade-dashboard/internal/domain"
	"github.com/jeovahfialho/trade-dashboard/pkg/logger"
	"github.com/jeovahfialho/trade-dashboard/pkg/metrics"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

var (
	ErrEmptyInput    = errors.New("input has no header row")
	ErrMissingColumn = errors.New("missing required column")
)

const (
	colTimestamp = "timestamp"
	colSymbol    = "symbol"
	colType      = "type"
	colPL        = "pl"
	colResult    = "result"
)

var requiredColumns = []string{colTimestamp, colSymbol, colType, colPL, colResult}

// Cells that pandas-style producers write for an absent P/L.
var missingMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"null": true,
	"none": true,
	"na":   true,
	"n/a":  true,
}

type Parser struct {
	comma    rune
	location *time.Location
}

// NewParser returns a parser for comma separated files. Timestamps without a zone are read in UTC.
func NewParser() *Parser {
	return &Parser{
		comma:    ',',
		location: time.UTC,
	}
}

func (p *Parser) WithComma(comma rune) *Parser {
	p.comma = comma
	return p
}

func (p *Parser) WithLocation(loc *time.Location) *Parser {
	if loc != nil {
		p.location = loc
	}
	return p
}

type ParseResult struct {
	FilePath string
	Records  []domain.TradeRecord
	Errors   []error
	Rows     int
}

// Rejected is the number of rows excluded from Records.
func (r *ParseResult) Rejected() int {
	return r.Rows - len(r.Records)
}

// RowError ties a row-level problem to its line in the source file.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

type columnIndex map[string]int

func (c columnIndex) value(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// ParseFile reads every row in source order. Rows with an unparsable timestamp are skipped
// and reported in ParseResult.Errors; only header problems abort the parse.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = p.comma
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Records: make([]domain.TradeRecord, 0, 256),
		Errors:  make([]error, 0),
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Rows++
			result.Errors = append(result.Errors, &RowError{Line: parseErrorLine(err), Err: err})
			metrics.RecordRow("rejected")
			continue
		}

		result.Rows++
		line, _ := csvReader.FieldPos(0)

		trade, err := p.parseRecord(record, cols)
		if err != nil {
			result.Errors = append(result.Errors, &RowError{Line: line, Err: err})
			metrics.RecordRow("rejected")
			logger.Debug("row skipped", zap.Int("line", line), zap.Error(err))
			continue
		}

		pl, err := parsePL(cols.value(record, colPL))
		if err != nil {
			result.Errors = append(result.Errors, &RowError{Line: line, Err: err})
		}
		trade.PL = pl

		result.Records = append(result.Records, *trade)
		metrics.RecordRow("parsed")
	}

	return result, nil
}

func (p *Parser) parseRecord(record []string, cols columnIndex) (*domain.TradeRecord, error) {
	raw := cols.value(record, colTimestamp)
	if raw == "" {
		return nil, errors.New("missing timestamp")
	}

	ts, err := p.parseTimestamp(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}

	return &domain.TradeRecord{
		Timestamp: ts,
		Symbol:    cols.value(record, colSymbol),
		Type:      cols.value(record, colType),
		Result:    cols.value(record, colResult),
	}, nil
}

// minuteLayouts are accepted in addition to the formats cast understands.
var minuteLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

func (p *Parser) parseTimestamp(raw string) (time.Time, error) {
	ts, err := cast.ToTimeInDefaultLocationE(raw, p.location)
	if err == nil {
		return ts, nil
	}
	for _, layout := range minuteLayouts {
		if t, perr := time.ParseInLocation(layout, raw, p.location); perr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// parsePL returns nil for an absent value. A malformed value is also treated as absent,
// with the error returned for reporting.
func parsePL(raw string) (*float64, error) {
	if missingMarkers[strings.ToLower(raw)] {
		return nil, nil
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid pl %q: %w", raw, err)
	}
	if math.IsNaN(v) {
		return nil, nil
	}
	return &v, nil
}

func mapColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return cols, nil
}

func parseErrorLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}

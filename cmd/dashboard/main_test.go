package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeovahfialho/trade-dashboard/internal/config"
	"github.com/jeovahfialho/trade-dashboard/internal/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tradesCSV = `timestamp,symbol,type,pl,result
2024-01-15 09:30:00,EURUSD.M,buy,10,win
2024-01-16 14:00:00,GBPUSD_,sell,-5,loss
2024-01-17 08:00:00,EURUSDM,buy,,win
2024-01-20 08:00:00,USDJPY,buy,4,win
`

func writeTrades(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trade_results.csv")
	require.NoError(t, os.WriteFile(path, []byte(tradesCSV), 0o644))
	return path
}

func testConfig(file string) *config.Config {
	return &config.Config{
		DataFile:      file,
		HistogramBins: 10,
		OutputFormat:  "text",
		LogLevel:      "info",
		Environment:   "test",
	}
}

func TestReportCommand(t *testing.T) {
	path := writeTrades(t)
	metricsPath := filepath.Join(t.TempDir(), "dashboard.prom")

	cmd := newRootCmd(testConfig(path))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report", "--start", "2024-01-15", "--end", "2024-01-17", "--metrics-file", metricsPath})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "2024-01-15 → 2024-01-17")
	assert.Contains(t, out.String(), "50.00")
	assert.Contains(t, out.String(), "EURUSD buy → 10.00")
	assert.Contains(t, out.String(), "GBPUSD sell → -5.00")
	assert.NotContains(t, out.String(), "USDJPY")

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dashboard_trades_filtered_total")
}

func TestReportCommand_DefaultRangeJSON(t *testing.T) {
	cmd := newRootCmd(testConfig(writeTrades(t)))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report", "--format", "json"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), `"total_signals": 3`)
	assert.Contains(t, out.String(), `"most_traded_symbol": "EURUSD"`)
}

func TestReportCommand_MissingFile(t *testing.T) {
	cmd := newRootCmd(testConfig(filepath.Join(t.TempDir(), "absent.csv")))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"report"})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, ingestion.ErrMissingInputFile)
}

func TestReportCommand_BadInput(t *testing.T) {
	path := writeTrades(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "bad start", args: []string{"report", "--start", "15/01/2024"}},
		{name: "bad end", args: []string{"report", "--end", "2024-13-01"}},
		{name: "bad format", args: []string{"report", "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd(testConfig(path))
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			assert.Error(t, cmd.ExecuteContext(context.Background()))
		})
	}
}

func TestRangeCommand(t *testing.T) {
	cmd := newRootCmd(testConfig(writeTrades(t)))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"range"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "2024-01-15 → 2024-01-20")
	assert.Contains(t, out.String(), "4 trades (0 rows skipped)")
}

func TestReportCommand_NoValidTrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_results.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,symbol,type,pl,result\nnot-a-date,EURUSD,buy,1,win\n"), 0o644))

	cmd := newRootCmd(testConfig(path))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "No valid trades in "+path)
	assert.NotContains(t, out.String(), "0001-01-01")
}

func TestReportCommand_NoValidTradesExplicitRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_results.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,symbol,type,pl,result\n"), 0o644))

	cmd := newRootCmd(testConfig(path))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report", "--start", "2024-01-01", "--end", "2024-01-31"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "2024-01-01 → 2024-01-31")
	assert.Contains(t, out.String(), "No trades in the selected range")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeovahfialho/trade-dashboard/internal/config"
	"github.com/jeovahfialho/trade-dashboard/internal/ingestion"
	"github.com/jeovahfialho/trade-dashboard/internal/report"
	"github.com/jeovahfialho/trade-dashboard/internal/service"
	"github.com/jeovahfialho/trade-dashboard/pkg/logger"
	"github.com/jeovahfialho/trade-dashboard/pkg/metrics"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Development()); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		logger.Close()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trade-dashboard",
		Short: "Trade signal dashboard CLI",
		Long: `CLI for analysing historical trade results.
Reads a CSV of trades, filters it by date range and reports win rate,
average win/loss, the most traded pair and the P/L distribution.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("file", "f", cfg.DataFile, "Trade results CSV file")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Builds the dashboard for a date range",
		Long: `Builds the dashboard for an inclusive date range.
Dates use YYYY-MM-DD; a missing bound defaults to the first or last
date found in the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			format, _ := cmd.Flags().GetString("format")
			bins, _ := cmd.Flags().GetInt("bins")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")

			return runReport(cmd.Context(), cmd.OutOrStdout(), reportOptions{
				File:        file,
				Start:       start,
				End:         end,
				Format:      format,
				Bins:        bins,
				MetricsFile: metricsFile,
			})
		},
	}

	reportCmd.Flags().StringP("start", "s", "", "Start date (YYYY-MM-DD)")
	reportCmd.Flags().StringP("end", "e", "", "End date (YYYY-MM-DD)")
	reportCmd.Flags().StringP("format", "o", cfg.OutputFormat, "Output format: text, json or yaml")
	reportCmd.Flags().IntP("bins", "b", cfg.HistogramBins, "Number of P/L histogram bins")
	reportCmd.Flags().String("metrics-file", cfg.MetricsFile, "Write pipeline metrics to this file (Prometheus text format)")

	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Shows the date range available in the file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			return runRange(cmd.Context(), cmd.OutOrStdout(), file)
		},
	}

	rootCmd.AddCommand(reportCmd, rangeCmd)
	return rootCmd
}

type reportOptions struct {
	File        string
	Start       string
	End         string
	Format      string
	Bins        int
	MetricsFile string
}

func runReport(ctx context.Context, out io.Writer, opts reportOptions) error {
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	result, err := loadTrades(ctx, opts.File)
	if err != nil {
		return err
	}

	if _, ok := service.DataRange(result.Records); !ok && (opts.Start == "" || opts.End == "") {
		fmt.Fprintf(out, "⚠️  No valid trades in %s\n", opts.File)
		return nil
	}

	rng, err := service.ResolveRange(result.Records, opts.Start, opts.End)
	if err != nil {
		return err
	}

	dashboard := service.NewDashboardService(opts.Bins).Build(result.Records, rng)

	if err := report.Render(out, dashboard, format); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Info("metrics written", zap.String("file", opts.MetricsFile))
	}

	return nil
}

func runRange(ctx context.Context, out io.Writer, file string) error {
	result, err := loadTrades(ctx, file)
	if err != nil {
		return err
	}

	rng, ok := service.DataRange(result.Records)
	if !ok {
		fmt.Fprintf(out, "⚠️  No valid trades in %s\n", file)
		return nil
	}

	fmt.Fprintf(out, "📂 %s\n", file)
	fmt.Fprintf(out, "📅 Available range: %s\n", rng)
	fmt.Fprintf(out, "📊 %d trades (%d rows skipped)\n", len(result.Records), result.Rejected())
	return nil
}

func loadTrades(ctx context.Context, file string) (*ingestion.ParseResult, error) {
	result, err := ingestion.NewLoader(nil).LoadFile(ctx, file)
	if errors.Is(err, ingestion.ErrMissingInputFile) {
		return nil, fmt.Errorf("trade results file %s not found, generate it before running the dashboard: %w", file, err)
	}
	if err != nil {
		return nil, err
	}

	for _, rowErr := range result.Errors {
		logger.Warn("row problem", zap.Error(rowErr))
	}

	return result, nil
}

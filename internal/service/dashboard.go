package service

import (
	"github.com/jeovahfialho/trade-dashboard/internal/domain"
	"github.com/jeovahfialho/trade-dashboard/pkg/logger"
	"github.com/jeovahfialho/trade-dashboard/pkg/metrics"
	"go.uber.org/zap"
)

type DashboardService struct {
	log  *zap.Logger
	bins int
}

func NewDashboardService(bins int) *DashboardService {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	return &DashboardService{
		log:  logger.Named("dashboard"),
		bins: bins,
	}
}

// Build filters records to rng and derives the KPIs and the P/L histogram.
func (s *DashboardService) Build(records []domain.TradeRecord, rng domain.DateRange) *domain.Dashboard {
	timer := metrics.NewTimer()
	trades, dropped := filterTrades(records, rng)
	timer.ObserveDuration(metrics.StageDuration.WithLabelValues("filter"))

	metrics.RecordFiltered("kept", len(trades))
	metrics.RecordFiltered("out_of_range", dropped.OutOfRange)
	metrics.RecordFiltered("missing_pl", dropped.MissingPL)

	timer = metrics.NewTimer()
	kpis := ComputeKPIs(trades)
	timer.ObserveDuration(metrics.StageDuration.WithLabelValues("kpis"))

	timer = metrics.NewTimer()
	hist := BuildHistogram(trades, s.bins)
	timer.ObserveDuration(metrics.StageDuration.WithLabelValues("histogram"))

	metrics.RecordDashboard(kpis.TotalSignals, kpis.WinRate)

	dashboard := &domain.Dashboard{
		Range:     rng,
		Trades:    trades,
		KPIs:      kpis,
		Histogram: hist,
		Dropped:   dropped,
	}

	if dashboard.Empty() {
		s.log.Warn("no trades in range",
			zap.Stringer("range", rng),
			zap.Int("input", len(records)),
			zap.Int("out_of_range", dropped.OutOfRange),
			zap.Int("missing_pl", dropped.MissingPL))
		return dashboard
	}

	s.log.Info("dashboard built",
		zap.Stringer("range", rng),
		zap.Int("total_signals", kpis.TotalSignals),
		zap.Float64("win_rate", kpis.WinRate),
		zap.String("most_traded_symbol", kpis.MostTradedSymbol),
		zap.Int("out_of_range", dropped.OutOfRange),
		zap.Int("missing_pl", dropped.MissingPL))

	return dashboard
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RowsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_rows_parsed_total",
		Help: "Total number of CSV rows read, by outcome",
	}, []string{"status"})

	TradesFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_trades_filtered_total",
		Help: "Total number of trades seen by the filter stage, by outcome",
	}, []string{"outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_stage_duration_seconds",
		Help:    "Duration of pipeline stages",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	LastWinRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_last_win_rate_percent",
		Help: "Win rate of the most recent dashboard build",
	})

	LastTotalSignals = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_last_total_signals",
		Help: "Number of signals in the most recent dashboard build",
	})
)

func RecordRow(status string) {
	RowsParsed.WithLabelValues(status).Inc()
}

func RecordFiltered(outcome string, n int) {
	if n <= 0 {
		return
	}
	TradesFiltered.WithLabelValues(outcome).Add(float64(n))
}

func RecordDashboard(totalSignals int, winRate float64) {
	LastTotalSignals.Set(float64(totalSignals))
	LastWinRate.Set(winRate)
}

// WriteTextfile dumps the default registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
	}
}

func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(time.Since(t.start).Seconds())
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

package metrics

import (
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// FinancialMetricsCollector tracks ledger postings
type FinancialMetricsCollector struct {
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec
	cashFlowTotal     *prometheus.CounterVec
}

// NewFinancialMetricsCollector creates a new financial metrics collector
func NewFinancialMetricsCollector() *FinancialMetricsCollector {
	return &FinancialMetricsCollector{
		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of ledger transactions by type and category",
			},
			[]string{"level", "type", "category"},
		),

		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Absolute transaction amount distribution",
				Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000},
			},
			[]string{"type"},
		),

		cashFlowTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cash_flow_total",
				Help:      "Accumulated absolute cash movement by direction and category",
			},
			[]string{"level", "direction", "category"},
		),
	}
}

// Register registers all financial metrics with the Prometheus registry
func (c *FinancialMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{c.transactionsTotal, c.transactionAmount, c.cashFlowTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordTransaction records one ledger posting
func (c *FinancialMetricsCollector) RecordTransaction(levelID int, transactionType string, category string, amount float64, balanceAfter float64) {
	level := strconv.Itoa(levelID)
	direction := "inflow"
	if amount < 0 {
		direction = "outflow"
	}

	c.transactionsTotal.WithLabelValues(level, transactionType, category).Inc()
	c.transactionAmount.WithLabelValues(transactionType).Observe(math.Abs(amount))
	c.cashFlowTotal.WithLabelValues(level, direction, category).Add(math.Abs(amount))
}

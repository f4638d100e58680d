package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// GameMetricsCollector tracks day transitions, rejections and completed games per level
type GameMetricsCollector struct {
	daysProcessed      *prometheus.CounterVec
	dayProfit          *prometheus.HistogramVec
	closingCash        *prometheus.HistogramVec
	rejections         *prometheus.CounterVec
	processingFailures *prometheus.CounterVec
	gamesCompleted     *prometheus.CounterVec
	scoreRatio         *prometheus.HistogramVec
}

// NewGameMetricsCollector creates a new game metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	return &GameMetricsCollector{
		daysProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "days_processed_total",
				Help:      "Total number of processed game days",
			},
			[]string{"level"},
		),

		dayProfit: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "day_profit",
				Help:      "Profit of a single processed day",
				Buckets:   []float64{-1000, -250, -50, 0, 50, 250, 1000, 5000},
			},
			[]string{"level"},
		),

		closingCash: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "closing_cash",
				Help:      "Cash balance at the end of a processed day",
				Buckets:   []float64{0, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"level"},
		),

		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "affordability_rejections_total",
				Help:      "Actions rejected for insufficient cash, by largest cost component",
			},
			[]string{"level", "dominant_cost"},
		),

		processingFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "processing_failures_total",
				Help:      "Day transitions aborted because an invariant would break",
			},
			[]string{"level"},
		),

		gamesCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_completed_total",
				Help:      "Level attempts that reached game over",
			},
			[]string{"level"},
		),

		scoreRatio: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "final_score_ratio",
				Help:      "Final score as a fraction of the level's maximum score",
				Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
			},
			[]string{"level"},
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	metrics := []prometheus.Collector{
		c.daysProcessed,
		c.dayProfit,
		c.closingCash,
		c.rejections,
		c.processingFailures,
		c.gamesCompleted,
		c.scoreRatio,
	}
	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

func (c *GameMetricsCollector) RecordDayProcessed(levelID int, profit float64, cash float64) {
	level := strconv.Itoa(levelID)
	c.daysProcessed.WithLabelValues(level).Inc()
	c.dayProfit.WithLabelValues(level).Observe(profit)
	c.closingCash.WithLabelValues(level).Observe(cash)
}

func (c *GameMetricsCollector) RecordAffordabilityRejection(levelID int, dominantCost string) {
	if dominantCost == "" {
		dominantCost = "none"
	}
	c.rejections.WithLabelValues(strconv.Itoa(levelID), dominantCost).Inc()
}

func (c *GameMetricsCollector) RecordProcessingFailure(levelID int) {
	c.processingFailures.WithLabelValues(strconv.Itoa(levelID)).Inc()
}

func (c *GameMetricsCollector) RecordGameCompleted(levelID int, score int, maxScore int) {
	level := strconv.Itoa(levelID)
	c.gamesCompleted.WithLabelValues(level).Inc()
	if maxScore > 0 {
		c.scoreRatio.WithLabelValues(level).Observe(float64(score) / float64(maxScore))
	}
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace for all metrics
	namespace = "lthgame"
	// Subsystem for the simulation engine
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalGameCollector is set by SetGlobalGameCollector() when metrics are enabled
	globalGameCollector GameMetricsRecorder

	// globalFinancialCollector is set by SetGlobalFinancialCollector() when metrics are enabled
	globalFinancialCollector FinancialMetricsRecorder
)

// GameMetricsRecorder records day transitions and game completions
type GameMetricsRecorder interface {
	RecordDayProcessed(levelID int, profit float64, cash float64)
	RecordAffordabilityRejection(levelID int, dominantCost string)
	RecordProcessingFailure(levelID int)
	RecordGameCompleted(levelID int, score int, maxScore int)
}

// FinancialMetricsRecorder records ledger postings
type FinancialMetricsRecorder interface {
	RecordTransaction(levelID int, transactionType string, category string, amount float64, balanceAfter float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Handler exposes the registry in the Prometheus text format
func Handler() http.Handler {
	if Registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// SetGlobalGameCollector sets the global game metrics collector
func SetGlobalGameCollector(collector GameMetricsRecorder) {
	globalGameCollector = collector
}

// SetGlobalFinancialCollector sets the global financial metrics collector
func SetGlobalFinancialCollector(collector FinancialMetricsRecorder) {
	globalFinancialCollector = collector
}

// RecordDayProcessed records a successful day transition globally
func RecordDayProcessed(levelID int, profit float64, cash float64) {
	if globalGameCollector != nil {
		globalGameCollector.RecordDayProcessed(levelID, profit, cash)
	}
}

// RecordAffordabilityRejection records an action rejected for insufficient cash
func RecordAffordabilityRejection(levelID int, dominantCost string) {
	if globalGameCollector != nil {
		globalGameCollector.RecordAffordabilityRejection(levelID, dominantCost)
	}
}

// RecordProcessingFailure records a day transition aborted by an invariant check
func RecordProcessingFailure(levelID int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordProcessingFailure(levelID)
	}
}

// RecordGameCompleted records a finished level attempt
func RecordGameCompleted(levelID int, score int, maxScore int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordGameCompleted(levelID, score, maxScore)
	}
}

// RecordTransaction records a ledger posting globally
func RecordTransaction(levelID int, transactionType string, category string, amount float64, balanceAfter float64) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTransaction(levelID, transactionType, category, amount, balanceAfter)
	}
}

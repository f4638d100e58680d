package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// CommandMetricsCollector times every mediator request and counts outcomes by error kind
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

func NewCommandMetricsCollector() *CommandMetricsCollector {
	labels := []string{"command", "outcome"}
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "command_duration_seconds",
			Help:      "Mediator request latency by request type and outcome",
			// day processing touches three tables; anything past 250ms is worth seeing
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, labels),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_total",
			Help:      "Mediator requests by request type and outcome (ok, validation, affordability, conflict, not_found, error)",
		}, labels),
	}
}

// Register is a no-op while metrics are disabled
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	if err := Registry.Register(c.commandDuration); err != nil {
		return err
	}
	return Registry.Register(c.commandsTotal)
}

// RecordCommandExecution observes one request; err picks the outcome label
func (c *CommandMetricsCollector) RecordCommandExecution(commandName string, seconds float64, err error) {
	outcome := outcomeOf(err)
	c.commandDuration.WithLabelValues(commandName, outcome).Observe(seconds)
	c.commandsTotal.WithLabelValues(commandName, outcome).Inc()
}

func outcomeOf(err error) string {
	var (
		validation    *shared.ValidationError
		affordability *shared.AffordabilityError
		conflict      *shared.ConflictError
		notFound      *shared.NotFoundError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &affordability):
		return "affordability"
	case errors.As(err, &conflict):
		return "conflict"
	case errors.As(err, &notFound):
		return "not_found"
	default:
		return "error"
	}
}

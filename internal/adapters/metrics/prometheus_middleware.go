package metrics

import (
	"context"
	"time"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/mediator"
)

// PrometheusMiddleware times each request, labelled with mediator.RequestName
// ("*commands.ProcessDayCommand" is recorded as "ProcessDayCommand").
// A nil collector passes requests straight through.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(mediator.RequestName(request), time.Since(start).Seconds(), err)
		return response, err
	}
}

package inference

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lullaby",
			Subsystem: "inference",
			Name:      "requests_total",
			Help:      "Total number of completion calls to the model provider.",
		},
		[]string{"provider", "model", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lullaby",
			Subsystem: "inference",
			Name:      "request_duration_seconds",
			Help:      "Duration of completion calls to the model provider.",
			Buckets:   []float64{.25, .5, 1, 2, 4, 6, 8, 10, 15},
		},
		[]string{"provider", "model"},
	)
)

type instrumented struct {
	next     Inferencer
	provider string
	model    string
}

// Instrument records call counts and latencies for every Infer call.
func Instrument(next Inferencer, provider, model string) Inferencer {
	return &instrumented{next: next, provider: provider, model: model}
}

func (i *instrumented) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	start := time.Now()
	out, err := i.next.Infer(ctx, params, system, user)
	requestDuration.WithLabelValues(i.provider, i.model).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(i.provider, i.model, status(err)).Inc()
	return out, err
}

func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrEmptyCompletion):
		return "empty"
	default:
		return "error"
	}
}

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lullaby",
			Subsystem: "http",
			Name:      "generation_failures_total",
			Help:      "Generation requests answered with an error, by endpoint and failure kind.",
		},
		[]string{"endpoint", "kind"},
	)
	quizFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lullaby",
			Subsystem: "quiz",
			Name:      "fallbacks_total",
			Help:      "Quiz requests answered with the fixed fallback quiz, by failure kind.",
		},
		[]string{"kind"},
	)
)

package cooker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cook outcomes used as metric labels.
const (
	outcomeSuccess   = "success"
	outcomeError     = "error"
	outcomeCancelled = "cancelled"
)

var (
	// Cook metrics
	cooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipecook_cooks_total",
			Help: "Total number of recipe cooks by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	cookDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipecook_cook_duration_seconds",
			Help:    "Duration of recipe cooks in seconds, parse through delivery",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// Model metrics
	modelsProduced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipecook_models_produced_total",
			Help: "Total number of models delivered to callbacks",
		},
	)
	modelsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipecook_models_dropped_total",
			Help: "Total number of models rejected by translator validation",
		},
	)

	// Async task metrics
	tasksInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipecook_tasks_in_progress",
			Help: "Current number of asynchronous cooks that have not finished",
		},
	)
	tasksCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipecook_tasks_cancelled_total",
			Help: "Total number of asynchronous cooks cancelled before completion",
		},
	)
)

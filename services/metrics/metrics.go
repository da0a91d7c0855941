package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MealsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "licaca",
		Name:      "meals_created_total",
		Help:      "Meals persisted with their food feelings.",
	})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "licaca",
		Name:      "meal_validation_failures_total",
		Help:      "Create requests rejected by validation, by offending field.",
	}, []string{"field"})

	StorageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "licaca",
		Name:      "storage_failures_total",
		Help:      "Meal store operations that failed.",
	}, []string{"operation"})

	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "licaca",
		Name:      "event_publish_failures_total",
		Help:      "Meal created events that could not be published.",
	})
)

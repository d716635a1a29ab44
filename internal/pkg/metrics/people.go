package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	peopleOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "people_operations_total",
			Help: "Total number of person operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	randomPicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "people_random_picks_total",
			Help: "Total number of random person picks by policy and outcome",
		},
		[]string{"policy", "outcome"},
	)

	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "people_events_published_total",
			Help: "Total number of person events handed to the queue",
		},
		[]string{"type", "outcome"},
	)

	eventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "people_events_processed_total",
			Help: "Total number of person events processed by the worker",
		},
		[]string{"type", "outcome"},
	)
)

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	OutcomeSkipped  = "skipped"
)

// RecordPersonOperation counts a create, list or delete by outcome
func RecordPersonOperation(operation, outcome string) {
	peopleOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordRandomPick counts a random pick
func RecordRandomPick(policy, outcome string) {
	randomPicks.WithLabelValues(policy, outcome).Inc()
}

// RecordEventPublished counts an attempt to enqueue a person event
func RecordEventPublished(eventType, outcome string) {
	eventsPublished.WithLabelValues(eventType, outcome).Inc()
}

// RecordEventProcessed counts a person event handled by the worker
func RecordEventProcessed(eventType, outcome string) {
	eventsProcessed.WithLabelValues(eventType, outcome).Inc()
}

// Package metrics holds the Prometheus collectors shared by the backend and the console.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CollectionOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_operations_total",
		Help: "Collection operations served by the backend, by outcome.",
	}, []string{"collection", "operation", "outcome"})

	StaleResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_stale_responses_total",
		Help: "Fetch responses discarded because a newer fetch was issued.",
	}, []string{"collection"})
)

// ObserveOperation records one backend operation; a nil err counts as "ok".
func ObserveOperation(collection, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CollectionOperations.WithLabelValues(collection, operation, outcome).Inc()
}

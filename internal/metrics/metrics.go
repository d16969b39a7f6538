package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mesa"

var (
	once sync.Once

	reservationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Count of reservations created by source.",
		},
		[]string{"source"},
	)

	allocationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_failures_total",
			Help:      "Count of booking attempts refused by the availability engine, by kind.",
		},
		[]string{"kind"},
	)

	reallocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reallocations_total",
			Help:      "Count of party size changes by outcome (kept, moved, failed).",
		},
		[]string{"outcome"},
	)

	slotCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_cache_requests_total",
			Help:      "Slot cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservationsCreated, allocationFailures, reallocations, slotCacheRequests)
	})
}

func IncReservationCreated(source string) {
	reservationsCreated.WithLabelValues(source).Inc()
}

func IncAllocationFailure(kind string) {
	allocationFailures.WithLabelValues(kind).Inc()
}

func IncReallocation(outcome string) {
	reallocations.WithLabelValues(outcome).Inc()
}

func IncSlotCache(result string) {
	slotCacheRequests.WithLabelValues(result).Inc()
}

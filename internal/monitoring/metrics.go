// Package monitoring exposes Prometheus counters for the admission and
// approval pipeline. Counters are registered on the default registry and
// served by promhttp from the router.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	admissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_admissions_total",
			Help: "Registration submissions by outcome",
		},
		[]string{"outcome"},
	)

	decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_decisions_total",
			Help: "Approval workflow decisions by result",
		},
		[]string{"decision", "result"},
	)

	slotsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capacity_slots_reserved_total",
			Help: "Capacity units consumed by approvals",
		},
	)

	pendingQueue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registrations_pending",
			Help: "Registrations awaiting an admin decision",
		},
	)
)

// Admission outcomes.
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeFull      = "full"
	OutcomeClosed    = "closed"
	OutcomeError     = "error"
)

func RecordAdmission(outcome string) {
	admissions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeAccepted {
		pendingQueue.Inc()
	}
}

func RecordApproval(result string) {
	decisions.WithLabelValues("approve", result).Inc()
	if result == "ok" {
		slotsReserved.Inc()
		pendingQueue.Dec()
	}
}

func RecordRejection(result string) {
	decisions.WithLabelValues("reject", result).Inc()
	if result == "ok" {
		pendingQueue.Dec()
	}
}

package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// transitionsTotal counts committed workflow events by type.
	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_transitions_total",
			Help: "Committed proposal lifecycle events.",
		},
		[]string{"event"},
	)

	// dispatchFailuresTotal counts notifications that failed after commit.
	dispatchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_dispatch_failures_total",
			Help: "Proposal notifications that could not be delivered.",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(transitionsTotal, dispatchFailuresTotal)
}

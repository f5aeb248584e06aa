package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exposed on /metrics next to the Go runtime collectors.
var (
	panicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quote_manager",
		Subsystem: "http",
		Name:      "panics_total",
		Help:      "Handler panics recovered, by route.",
	}, []string{"route"})

	timeoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quote_manager",
		Subsystem: "http",
		Name:      "timeouts_total",
		Help:      "Requests answered 503 after their deadline expired, by route.",
	}, []string{"route"})

	rejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quote_manager",
		Subsystem: "http",
		Name:      "rejected_total",
		Help:      "Requests rejected before reaching a handler, by reason.",
	}, []string{"reason"})
)

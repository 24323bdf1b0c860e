package agentcall

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finbrief_agent_calls_total",
		Help: "Outbound collaborator calls by service, endpoint and outcome.",
	}, []string{"service", "endpoint", "outcome"})

	callLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "finbrief_agent_call_seconds",
		Help:    "Round-trip latency of collaborator calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "endpoint"})
)

func observeCall(t Target, o Outcome, elapsed time.Duration) {
	outcome := "success"
	if !o.Available() {
		outcome = "unavailable"
	}
	callsTotal.WithLabelValues(t.Service, t.Endpoint, outcome).Inc()
	callLatency.WithLabelValues(t.Service, t.Endpoint).Observe(elapsed.Seconds())
}

// README: Prometheus collectors for chat routing, extraction stages, outbound calls and handoffs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripchat_chat_requests_total",
			Help: "Chat requests by the path the assistant took",
		},
		[]string{"route"},
	)

	ExtractionStages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripchat_extraction_stage_total",
			Help: "Extraction runs by the last stage needed (pattern or model)",
		},
		[]string{"stage", "complete"},
	)

	OutboundCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripchat_outbound_calls_total",
			Help: "Outbound collaborator calls by target and outcome",
		},
		[]string{"target", "outcome"},
	)

	OutboundDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripchat_outbound_call_duration_seconds",
			Help:    "Latency of outbound collaborator calls including time waiting for a worker slot",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"target"},
	)

	OutboundInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tripchat_outbound_in_flight",
			Help: "Outbound calls currently holding a worker slot",
		},
	)

	Handoffs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripchat_handoffs_total",
			Help: "Live-agent escalations by delivery outcome",
		},
		[]string{"outcome"},
	)
)

// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notch_tool_invocations_total",
			Help: "Total number of tool invocations by outcome",
		},
		[]string{"tool", "outcome"},
	)

	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notch_tool_duration_seconds",
			Help:    "Duration of tool invocations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		},
		[]string{"tool"},
	)

	OffersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notch_offers_dispatched_total",
			Help: "Proposal emails by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	AgentToolRounds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notch_agent_tool_rounds",
			Help:    "Tool-call rounds needed to answer one user turn",
			Buckets: prometheus.LinearBuckets(0, 1, 8),
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notch_chat_sessions_active",
			Help: "Number of chat sessions currently open",
		},
	)
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid_arguments"
)

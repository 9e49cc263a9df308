package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/liamcoop/erpassistant/conversation"
)

var (
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_turns_total",
			Help: "Total number of answered utterances by intent",
		},
		[]string{"intent"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_turn_duration_seconds",
			Help:    "Time spent classifying and generating a reply, excluding the simulated delay",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"intent"},
	)

	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_classifications_total",
			Help: "Total number of classify-only requests by intent",
		},
		[]string{"intent"},
	)

	ActiveConversations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_active_conversations",
			Help: "Number of open conversations",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_http_requests_total",
			Help: "Total number of HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)
)

// TurnObserver records completed conversation turns
type TurnObserver struct{}

// ObserveTurn implements conversation.Observer
func (TurnObserver) ObserveTurn(t conversation.Turn) {
	tag := string(t.Intent.Tag)
	TurnsTotal.WithLabelValues(tag).Inc()
	TurnDuration.WithLabelValues(tag).Observe(t.Duration.Seconds())
}

// SetActiveConversations is suitable for conversation.Manager.OnChange
func SetActiveConversations(n int) {
	ActiveConversations.Set(float64(n))
}

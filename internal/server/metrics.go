package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zeroapi/zeroapi/internal/terminal"
)

const namespace = "zeroapi"

// Metrics holds the Prometheus collectors for one server.
type Metrics struct {
	SessionsTotal  prometheus.Counter
	SessionsActive prometheus.Gauge
	CommandsTotal  *prometheus.CounterVec
	FlowsTotal     *prometheus.CounterVec
	MessagesTotal  *prometheus.CounterVec
	RejectedTotal  prometheus.Counter
	HTTPRequests   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of terminal sessions opened",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of terminal sessions currently connected",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands typed at the welcome prompt, by action",
		}, []string{"action"}),
		FlowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flows_total",
			Help:      "Finished login and signup flows, by flow and outcome",
		}, []string{"flow", "outcome"}),
		MessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_messages_total",
			Help:      "WebSocket messages, by direction and type",
		}, []string{"direction", "type"}),
		RejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_messages_rejected_total",
			Help:      "Malformed client messages that were ignored",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code",
		}, []string{"route", "code"}),
	}

	reg.MustRegister(
		m.SessionsTotal,
		m.SessionsActive,
		m.CommandsTotal,
		m.FlowsTotal,
		m.MessagesTotal,
		m.RejectedTotal,
		m.HTTPRequests,
	)
	return m
}

// Observe records what a state transition did.
func (m *Metrics) Observe(o terminal.Outcome) {
	switch o.Kind {
	case terminal.OutcomeCommand:
		m.CommandsTotal.WithLabelValues(o.Action.String()).Inc()
	case terminal.OutcomeCleared:
		m.CommandsTotal.WithLabelValues(terminal.ActionClear.String()).Inc()
	}
	if o.Finished() {
		m.FlowsTotal.WithLabelValues(string(o.Mode), o.Kind.String()).Inc()
	}
}

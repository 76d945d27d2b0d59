// Package metrics exposes Prometheus counters for the blog shell core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the rest of the application reports to.
type Recorder interface {
	RecordEvent(event string)
	RecordTransition(screen string)
	RecordNameFetch(ok bool)
	RecordCredentialOp(op, result string)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	events        *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	nameFetches   *prometheus.CounterVec
	credentialOps *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ghostdesk_events_total",
			Help: "Host events routed, by event name",
		}, []string{"event"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ghostdesk_screen_transitions_total",
			Help: "Screen transitions, by target screen",
		}, []string{"screen"}),
		nameFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ghostdesk_name_fetches_total",
			Help: "Blog name fetches, by result",
		}, []string{"result"}),
		credentialOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ghostdesk_credential_ops_total",
			Help: "Keychain operations, by operation and result",
		}, []string{"op", "result"}),
	}

	reg.MustRegister(
		c.events,
		c.transitions,
		c.nameFetches,
		c.credentialOps,
	)

	return c
}

func (c *Collector) RecordEvent(event string) {
	c.events.WithLabelValues(event).Inc()
}

func (c *Collector) RecordTransition(screen string) {
	c.transitions.WithLabelValues(screen).Inc()
}

func (c *Collector) RecordNameFetch(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	c.nameFetches.WithLabelValues(result).Inc()
}

func (c *Collector) RecordCredentialOp(op, result string) {
	c.credentialOps.WithLabelValues(op, result).Inc()
}

// Handler serves the metrics of the given gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordEvent(string)                {}
func (Nop) RecordTransition(string)           {}
func (Nop) RecordNameFetch(bool)              {}
func (Nop) RecordCredentialOp(string, string) {}

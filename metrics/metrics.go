// Package metrics exposes invitation outcome counters to Prometheus.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry  *prometheus.Registry
	validated *prometheus.CounterVec
	accepted  *prometheus.CounterVec
}

// New registers the counters on a private registry so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		validated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invite_validate_total",
			Help: "Invitation lookups by verdict.",
		}, []string{"result"}),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invite_accept_total",
			Help: "Invitation accept attempts by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.validated, m.accepted)
	return m
}

func (m *Metrics) ObserveValidate(result string) {
	m.validated.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAccept(outcome string) {
	m.accepted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

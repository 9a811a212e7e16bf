package service

import (
	"blog-service/internal/access"

	"github.com/prometheus/client_golang/prometheus"
)

// PostMetrics counts post mutations by operation and outcome. A nil
// *PostMetrics records nothing.
type PostMetrics struct {
	mutations *prometheus.CounterVec
}

func NewPostMetrics(reg prometheus.Registerer) *PostMetrics {
	m := &PostMetrics{
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "post_mutations_total",
				Help: "Post mutations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}
	reg.MustRegister(m.mutations)
	return m
}

func (m *PostMetrics) applied(op access.Operation)  { m.inc(op, "applied") }
func (m *PostMetrics) denied(op access.Operation)   { m.inc(op, "denied") }
func (m *PostMetrics) rejected(op access.Operation) { m.inc(op, "invalid") }

func (m *PostMetrics) inc(op access.Operation, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(string(op), outcome).Inc()
}

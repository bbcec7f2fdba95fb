package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los contadores del servicio sobre un registry propio,
// para poder crear más de una instancia (tests levantan varios routers).
type Metrics struct {
	registry *prometheus.Registry

	VisitsCreated prometheus.Counter
	Transitions   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	return &Metrics{
		registry: reg,
		VisitsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "frontdesk_visits_created_total",
			Help: "Total de visitas registradas en recepción",
		}),
		Transitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_visit_transitions_total",
			Help: "Total de transiciones aplicadas por el motor de rutas",
		}, []string{"result"}), // completed | redirected
	}
}

func (m *Metrics) IncVisitCreated() {
	if m == nil {
		return
	}
	m.VisitsCreated.Inc()
}

func (m *Metrics) IncTransition(result string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(result).Inc()
}

// Handler expone el registry en /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

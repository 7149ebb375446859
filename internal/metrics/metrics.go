// metrics описывает Prometheus-метрики сайта: исходящие вызовы CMS
// и рендеринг страниц.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "covspace_site"

// Metrics — набор метрик; регистрируется в переданном Registerer.
type Metrics struct {
	CMSRequests *prometheus.CounterVec
	CMSDuration *prometheus.HistogramVec
	Renders     *prometheus.CounterVec
}

// New регистрирует метрики в reg. nil — prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	f := promauto.With(reg)

	return &Metrics{
		CMSRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cms",
			Name:      "requests_total",
			Help:      "Outgoing CMS requests by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		CMSDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cms",
			Name:      "request_duration_seconds",
			Help:      "Outgoing CMS request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_loads_total",
			Help:      "View loads by view name and final state.",
		}, []string{"view", "state"}),
	}
}

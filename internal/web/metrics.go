package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the site's interaction counters, kept on a private registry
// so tests can build as many servers as they like.
type Metrics struct {
	registry *prometheus.Registry

	PageViews  *prometheus.CounterVec
	Views      prometheus.Gauge
	Filters    *prometheus.CounterVec
	Selections *prometheus.CounterVec
	Contacts   *prometheus.CounterVec
	Resumes    prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PageViews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_page_views_total",
			Help: "Page and fragment requests by route, excluding assets and Do Not Track visitors",
		}, []string{"route"}),
		Views: f.NewGauge(prometheus.GaugeOpts{
			Name: "portfolio_roadmap_views",
			Help: "Roadmap views currently mounted",
		}),
		Filters: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_roadmap_filter_total",
			Help: "Roadmap filter changes by filter",
		}, []string{"filter"}),
		Selections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_roadmap_select_total",
			Help: "Roadmap nodes opened in the detail modal, by node type",
		}, []string{"type"}),
		Contacts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_total",
			Help: "Contact form submissions by result",
		}, []string{"result"}),
		Resumes: f.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_resume_downloads_total",
			Help: "Resume downloads served",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

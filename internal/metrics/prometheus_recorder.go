package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	renderDuration *prom.HistogramVec
	iconLookups    *prom.CounterVec
	menuCache      *prom.CounterVec
	summaries      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the render metrics on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "essential",
			Name:      "render_duration_seconds",
			Help:      "Duration of individual render hooks",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"hook"}),
		iconLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "essential",
			Name:      "icon_lookups_total",
			Help:      "Icon substitution lookups by result",
		}, []string{"result"}),
		menuCache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "essential",
			Name:      "menu_cache_total",
			Help:      "Per-request menu cache probes by menu and result",
		}, []string{"menu", "result"}),
		summaries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "essential",
			Name:      "message_summaries_total",
			Help:      "Message summaries rendered by read state",
		}, []string{"state"}),
	}
	reg.MustRegister(pr.renderDuration, pr.iconLookups, pr.menuCache, pr.summaries)
	return pr
}

func (p *PrometheusRecorder) ObserveRenderDuration(hook string, d time.Duration) {
	p.renderDuration.WithLabelValues(hook).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncIconLookup(result LookupResult) {
	p.iconLookups.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncMenuCache(menu string, result LookupResult) {
	p.menuCache.WithLabelValues(menu, string(result)).Inc()
}

func (p *PrometheusRecorder) AddMessageSummaries(unread, read int) {
	p.summaries.WithLabelValues("unread").Add(float64(unread))
	p.summaries.WithLabelValues("read").Add(float64(read))
}

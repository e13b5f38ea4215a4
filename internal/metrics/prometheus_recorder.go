package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	passDuration  prom.Histogram
	passOutcomes  *prom.CounterVec
	pagesRendered prom.Counter
	assetsCopied  prom.Counter
	renderErrors  prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		passDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "bloggg",
			Name:      "pass_duration_seconds",
			Help:      "Duration of full site build passes",
			Buckets:   prom.DefBuckets,
		}),
		passOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "bloggg",
			Name:      "pass_outcomes_total",
			Help:      "Build pass outcomes by final status",
		}, []string{"outcome"}),
		pagesRendered: prom.NewCounter(prom.CounterOpts{
			Namespace: "bloggg",
			Name:      "pages_rendered_total",
			Help:      "Markdown pages rendered to HTML",
		}),
		assetsCopied: prom.NewCounter(prom.CounterOpts{
			Namespace: "bloggg",
			Name:      "assets_copied_total",
			Help:      "Passthrough assets copied to the output tree",
		}),
		renderErrors: prom.NewCounter(prom.CounterOpts{
			Namespace: "bloggg",
			Name:      "render_errors_total",
			Help:      "Page renders that failed",
		}),
	}

	reg.MustRegister(pr.passDuration, pr.passOutcomes, pr.pagesRendered, pr.assetsCopied, pr.renderErrors)
	return pr
}

func (pr *PrometheusRecorder) ObservePassDuration(d time.Duration) {
	pr.passDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncPassOutcome(outcome string) {
	pr.passOutcomes.WithLabelValues(outcome).Inc()
}

func (pr *PrometheusRecorder) IncPagesRendered() { pr.pagesRendered.Inc() }
func (pr *PrometheusRecorder) IncAssetsCopied()  { pr.assetsCopied.Inc() }
func (pr *PrometheusRecorder) IncRenderErrors()  { pr.renderErrors.Inc() }

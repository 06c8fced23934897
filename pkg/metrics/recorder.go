package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder groups the Prometheus collectors exported by the service.
// Collectors are registered on the registry passed to NewRecorder so tests and
// multiple instances never share global state.
type Recorder struct {
	registry     *prometheus.Registry
	aiRequests   *prometheus.CounterVec
	aiTokens     *prometheus.CounterVec
	matches      *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// NewRecorder registers all collectors on registry.
func NewRecorder(registry *prometheus.Registry) *Recorder {
	r := &Recorder{
		registry: registry,
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skinsight_ai_requests_total",
			Help: "AI generation calls by feature and outcome (ok, cached, failed, unconfigured, rate_limited).",
		}, []string{"feature", "outcome"}),
		aiTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skinsight_ai_tokens_total",
			Help: "Tokens consumed by AI generation calls.",
		}, []string{"feature", "kind"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skinsight_product_matches_total",
			Help: "Catalog match resolutions by kind (matched, fallback, synthesized, unmatched).",
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skinsight_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skinsight_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}, []string{"route"}),
	}
	if registry != nil {
		registry.MustRegister(r.aiRequests, r.aiTokens, r.matches, r.httpRequests, r.httpLatency)
	}
	return r
}

// NewNopRecorder returns a recorder whose collectors are not exported anywhere.
func NewNopRecorder() *Recorder {
	return NewRecorder(nil)
}

// Registry exposes the backing registry for the /metrics handler.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// AIRequest counts one AI generation attempt.
func (r *Recorder) AIRequest(feature, outcome string) {
	if r == nil {
		return
	}
	r.aiRequests.WithLabelValues(feature, outcome).Inc()
}

// AITokens accumulates token usage for a feature.
func (r *Recorder) AITokens(feature string, usage TokenUsage) {
	if r == nil || usage.IsZero() {
		return
	}
	r.aiTokens.WithLabelValues(feature, "prompt").Add(float64(usage.PromptTokens))
	r.aiTokens.WithLabelValues(feature, "completion").Add(float64(usage.CompletionTokens))
}

// Match counts a catalog match resolution.
func (r *Recorder) Match(kind string) {
	if r == nil {
		return
	}
	r.matches.WithLabelValues(kind).Inc()
}

// HTTPRequest records a served request.
func (r *Recorder) HTTPRequest(route, status string, seconds float64) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, status).Inc()
	r.httpLatency.WithLabelValues(route).Observe(seconds)
}

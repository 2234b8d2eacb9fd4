// Package metrics records tool call counts and latencies for the /metrics
// endpoint of the http transport.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "duplocloud_mcp"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder owns a private prometheus registry. A nil Recorder records
// nothing.
type Recorder struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tool_calls_total",
		Help:      "Tool calls by tool, toolset and outcome.",
	}, []string{"tool", "toolset", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tool_call_duration_seconds",
		Help:      "Tool call latency, including DuploCloud API time.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"tool", "toolset"})
	registry.MustRegister(
		calls,
		duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Recorder{registry: registry, calls: calls, duration: duration}
}

func (r *Recorder) ObserveToolCall(tool, toolset string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	r.calls.WithLabelValues(tool, toolset, outcome).Inc()
	r.duration.WithLabelValues(tool, toolset).Observe(elapsed.Seconds())
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Package metrics holds the Prometheus collectors of the texplore server.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "texplore"

// Render outcomes used as the "result" label.
const (
	ResultOK        = "ok"
	ResultCancelled = "cancelled"
	ResultError     = "error"
)

// Metrics records render and export activity.
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	pixelsTotal    prometheus.Counter
	exportFailures prometheus.Counter
	requestsTotal  *prometheus.CounterVec
	cacheTotal     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		rendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "render",
			Name:      "total",
			Help:      "Number of rasterization passes by result.",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Duration of rasterization passes.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		pixelsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "render",
			Name:      "pixels_total",
			Help:      "Number of pixels rasterized by completed passes.",
		}),
		exportFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "export",
			Name:      "failures_total",
			Help:      "Number of failed image exports.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests.",
		}, []string{"path", "method", "status"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Number of image cache lookups by result.",
		}, []string{"result"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.rendersTotal, m.renderDuration, m.pixelsTotal, m.exportFailures, m.requestsTotal, m.cacheTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRender records one pass that started at started and covered
// pixels cells. Cancelled passes are counted but not timed.
func (m *Metrics) ObserveRender(started time.Time, pixels int, err error) {
	switch {
	case err == nil:
		m.rendersTotal.WithLabelValues(ResultOK).Inc()
		m.renderDuration.Observe(time.Since(started).Seconds())
		m.pixelsTotal.Add(float64(pixels))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		m.rendersTotal.WithLabelValues(ResultCancelled).Inc()
	default:
		m.rendersTotal.WithLabelValues(ResultError).Inc()
	}
}

// ExportFailed counts a failed export.
func (m *Metrics) ExportFailed() {
	m.exportFailures.Inc()
}

// ObserveCache counts an image cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheTotal.WithLabelValues(result).Inc()
}

// ObserveRequest counts an HTTP request.
func (m *Metrics) ObserveRequest(path, method string, status int) {
	m.requestsTotal.WithLabelValues(path, method, statusLabel(status)).Inc()
}

func statusLabel(status int) string {
	if status == 0 {
		status = 200
	}
	return strconv.Itoa(status)
}

package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokedata",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pokedata",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	dashboardBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokedata",
			Subsystem: "dashboard",
			Name:      "builds_total",
			Help:      "Dashboard builds by generation selection.",
		},
		[]string{"selection"},
	)
	chartRenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pokedata",
			Subsystem: "chart",
			Name:      "render_duration_seconds",
			Help:      "Chart render duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format"},
	)
	datasetRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pokedata",
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Rows in the loaded dataset.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, dashboardBuilds, chartRenderDuration, datasetRows)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordDashboardBuild(selection string) {
	RegisterMetrics()
	dashboardBuilds.WithLabelValues(selection).Inc()
}

func RecordChartRender(format string, duration time.Duration) {
	RegisterMetrics()
	chartRenderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

func SetDatasetRows(n int) {
	RegisterMetrics()
	datasetRows.Set(float64(n))
}

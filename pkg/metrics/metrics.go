package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tubesave"

// Collector owns a private registry so tests and multiple servers in one
// process never collide on the default one.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	bytes           prometheus.Counter
	downloadFailure *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "downloads_in_flight",
			Help:      "Downloads currently being buffered.",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloaded_bytes_total",
			Help:      "Bytes delivered to clients by the download endpoint.",
		}),
		downloadFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "download_failures_total",
			Help:      "Failed downloads by reason.",
		}, []string{"reason"}),
	}

	c.registry.MustRegister(
		c.requests,
		c.duration,
		c.inFlight,
		c.bytes,
		c.downloadFailure,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) ObserveRequest(route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// DownloadStarted bumps the in-flight gauge; call the returned func once the
// download has finished either way.
func (c *Collector) DownloadStarted() func() {
	c.inFlight.Inc()
	return c.inFlight.Dec
}

func (c *Collector) DownloadSucceeded(n int) {
	c.bytes.Add(float64(n))
}

func (c *Collector) DownloadFailed(reason string) {
	c.downloadFailure.WithLabelValues(reason).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

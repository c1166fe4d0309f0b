package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staybook/internal/domain/availability"
)

// Metrics owns the service registry. A nil *Metrics records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	messages     *prometheus.CounterVec
	msgLatency   *prometheus.HistogramVec
	windows      prometheus.Counter
	windowDays   *prometheus.CounterVec
	quotes       *prometheus.CounterVec
	cacheEvents  *prometheus.CounterVec
	published    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "staybook", Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "staybook", Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "staybook", Name: "bus_messages_total", Help: "Commands and queries handled."},
			[]string{"kind", "key", "outcome"},
		),
		msgLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "staybook", Name: "bus_message_duration_seconds",
				Help:    "Command and query duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "key"},
		),
		windows: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: "staybook", Name: "windows_generated_total", Help: "Availability windows generated."},
		),
		windowDays: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "staybook", Name: "window_days_total", Help: "Generated dates by status."},
			[]string{"status"},
		),
		quotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "staybook", Name: "quotes_total", Help: "Quotes computed by outcome."},
			[]string{"outcome"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "staybook", Name: "session_store_events_total", Help: "Session store hits/misses/sets/dels."},
			[]string{"store", "event"},
		),
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "staybook", Name: "outbox_published_total", Help: "Outbox records relayed to the broker."},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpLatency, m.messages, m.msgLatency,
		m.windows, m.windowDays, m.quotes, m.cacheEvents, m.published,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveMessage records a bus command or query.
func (m *Metrics) ObserveMessage(kind, key string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.messages.WithLabelValues(kind, key, outcome).Inc()
	m.msgLatency.WithLabelValues(kind, key).Observe(dur.Seconds())
}

func (m *Metrics) ObserveWindow(window []availability.DateInfo) {
	if m == nil {
		return
	}
	m.windows.Inc()
	for _, info := range window {
		m.windowDays.WithLabelValues(string(info.Status)).Inc()
	}
}

func (m *Metrics) ObserveQuote(outcome string) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(outcome).Inc()
}

// ObserveCache records a session store event: hit, miss, set or del.
func (m *Metrics) ObserveCache(store, event string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(store, event).Inc()
}

func (m *Metrics) ObservePublish(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.published.WithLabelValues(outcome).Inc()
}

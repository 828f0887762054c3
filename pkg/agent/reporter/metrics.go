package reporter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "conntrail"
	metricsSubsystem = "reporter"
)

var (
	scrapesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "scrapes_total",
		Help:      "Number of procfs scrape passes.",
	})
	scrapeErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "scrape_errors_total",
		Help:      "Number of scrape passes that failed at the proc root.",
	})
	reconnectsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "reconnects_total",
		Help:      "Number of reconnect attempts to the aggregator after a stream session ended.",
	})
	messagesSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "messages_sent_total",
		Help:      "Number of update messages written to the stream.",
	})
	connectionEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "connection_events_total",
		Help:      "Connection delta events sent, by kind.",
	}, []string{"kind"})
	rateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "rate_limited_connections_total",
		Help:      "Open events dropped by the per-container rate limit.",
	})
	storedConnectionsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "stored_connections",
		Help:      "Connections currently tracked, by direction and peer visibility.",
	}, []string{"direction", "visibility"})
	connectionRateGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "connection_rate",
		Help:      "New connections per second since the previous scrape, by direction and peer visibility.",
	}, []string{"direction", "visibility"})
)

func init() {
	prometheus.MustRegister(
		scrapesTotal,
		scrapeErrorsTotal,
		reconnectsTotal,
		messagesSentTotal,
		connectionEventsTotal,
		rateLimitedTotal,
		storedConnectionsGauge,
		connectionRateGauge,
	)
}

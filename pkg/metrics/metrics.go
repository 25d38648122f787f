package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricPrefix = "iwfm_"

var (
	// AlertEmailsSent counts alert notification emails accepted by the
	// mail transport.
	AlertEmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "alert_emails_sent_total",
		Help: "Total alert notification emails sent",
	})

	// AlertEmailFailures counts alert emails the transport rejected.
	AlertEmailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "alert_email_failures_total",
		Help: "Total alert notification emails that failed to send",
	})

	ForecastCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "forecast_cache_hits_total",
		Help: "Total forecast feed reads served from cache",
	})

	ForecastCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "forecast_cache_misses_total",
		Help: "Total forecast feed reads that went to the feed file",
	})
)

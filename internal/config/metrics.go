package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FallbacksTotal counts settings replaced by their defaults at load time.
var FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "journal_config_fallbacks_total",
	Help: "Total number of configuration values replaced by defaults",
}, []string{"field"})

func recordFallback(field string) {
	FallbacksTotal.WithLabelValues(field).Inc()
}

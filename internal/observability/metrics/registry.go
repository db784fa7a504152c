package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EntriesTotal tracks the number of stored journal entries.
	EntriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "journal_entries_total",
			Help: "Total number of journal entries in the store",
		},
	)

	// WordsTotal tracks the number of words across all entries.
	WordsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "journal_words_total",
			Help: "Total number of words across all journal entries",
		},
	)

	// EntryWritesTotal counts successful writes by operation (created, updated, deleted).
	EntryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_entry_writes_total",
			Help: "Total number of successful journal entry writes",
		},
		[]string{"operation"},
	)

	// StatsRefreshTotal counts scheduled stats refresh runs by status.
	StatsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_stats_refresh_total",
			Help: "Total number of scheduled journal stats refreshes",
		},
		[]string{"status"},
	)
)

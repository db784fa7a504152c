// Package metrics provides the journal's business metrics and recording utilities.
//
// Metrics are registered with the Prometheus default registry and exposed via /metrics:
//   - journal_entries_total: number of stored entries
//   - journal_words_total: number of words across all entries
//   - journal_entry_writes_total{operation}: created/updated/deleted writes
//   - journal_stats_refresh_total{status}: scheduled refresh runs
//
// The totals are refreshed by StatsRefresher on a cron schedule.
package metrics

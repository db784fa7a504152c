package metrics

import "daily-journal/internal/domain/entity"

// RecordEntryWrite records one successful write. operation is created, updated or deleted.
func RecordEntryWrite(operation string) {
	EntryWritesTotal.WithLabelValues(operation).Inc()
}

// UpdateJournalTotals sets the entry and word gauges from a stats snapshot.
func UpdateJournalTotals(st entity.Stats) {
	EntriesTotal.Set(float64(st.TotalEntries))
	WordsTotal.Set(float64(st.TotalWords))
}

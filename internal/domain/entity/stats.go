package entity

import "math"

// Stats summarizes all entries in the journal.
// FirstEntryDate and LastEntryDate are nil when the journal is empty.
type Stats struct {
	TotalEntries     int
	AvgWordsPerEntry int
	FirstEntryDate   *string
	LastEntryDate    *string
	TotalWords       int
}

// ComputeStats aggregates the given entries. Order of the input does not matter.
func ComputeStats(entries []*Entry) Stats {
	var st Stats
	for _, e := range entries {
		if e == nil {
			continue
		}
		st.TotalEntries++
		st.TotalWords += e.WordCount()

		date := e.Date
		if st.FirstEntryDate == nil || date < *st.FirstEntryDate {
			st.FirstEntryDate = &date
		}
		if st.LastEntryDate == nil || date > *st.LastEntryDate {
			st.LastEntryDate = &date
		}
	}
	if st.TotalEntries > 0 {
		st.AvgWordsPerEntry = int(math.Round(float64(st.TotalWords) / float64(st.TotalEntries)))
	}
	return st
}

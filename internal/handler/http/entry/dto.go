package entry

import (
	"time"

	"daily-journal/internal/domain/entity"
)

// DTO is the wire form of a journal entry.
type DTO struct {
	ID        string    `json:"id"`
	MongoID   string    `json:"_id"` // Mirrors ID for the browser client, which reads entry._id
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatsDTO is the wire form of journal statistics.
type StatsDTO struct {
	TotalEntries     int     `json:"totalEntries"`
	AvgWordsPerEntry int     `json:"avgWordsPerEntry"`
	FirstEntryDate   *string `json:"firstEntryDate"`
	LastEntryDate    *string `json:"lastEntryDate"`
	TotalWords       int     `json:"totalWords"`
}

func toDTO(e *entity.Entry) DTO {
	return DTO{
		ID:        e.ID,
		MongoID:   e.ID,
		Date:      e.Date,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toDTOs(list []*entity.Entry) []DTO {
	out := make([]DTO, 0, len(list))
	for _, e := range list {
		out = append(out, toDTO(e))
	}
	return out
}

func toStatsDTO(st entity.Stats) StatsDTO {
	return StatsDTO{
		TotalEntries:     st.TotalEntries,
		AvgWordsPerEntry: st.AvgWordsPerEntry,
		FirstEntryDate:   st.FirstEntryDate,
		LastEntryDate:    st.LastEntryDate,
		TotalWords:       st.TotalWords,
	}
}

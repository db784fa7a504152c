package repository

import (
	"context"
	"time"

	"daily-journal/internal/domain/entity"
)

// EntryRepository persists journal entries. Implementations must enforce date
// uniqueness at the storage level.
type EntryRepository interface {
	// List returns all entries ordered by date descending.
	List(ctx context.Context) ([]*entity.Entry, error)
	// GetByDate returns nil, nil when no entry exists for date.
	GetByDate(ctx context.Context, date string) (*entity.Entry, error)
	// Upsert inserts e, or when an entry with e.Date already exists, replaces its
	// content and updated_at. It returns the stored row; the returned ID equals e.ID
	// only when a new row was inserted.
	Upsert(ctx context.Context, e *entity.Entry) (*entity.Entry, error)
	// UpdateContent returns nil, nil when no entry has the given id.
	UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*entity.Entry, error)
	// Delete returns entity.ErrNotFound when no entry has the given id.
	Delete(ctx context.Context, id string) error
	// Search returns entries whose content contains query, ignoring case, ordered by date descending.
	Search(ctx context.Context, query string) ([]*entity.Entry, error)
}

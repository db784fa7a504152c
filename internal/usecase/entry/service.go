package entry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"daily-journal/internal/domain/entity"
	"daily-journal/internal/observability/metrics"
	"daily-journal/internal/repository"
)

// Service provides journal entry use cases.
// Now and NewID are optional and default to time.Now and UUID v4.
type Service struct {
	Repo  repository.EntryRepository
	Now   func() time.Time
	NewID func() string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// List returns every entry, newest date first.
func (s *Service) List(ctx context.Context) ([]*entity.Entry, error) {
	entries, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeErr("list entries", err)
	}
	return entries, nil
}

// GetByDate returns the entry for date or ErrEntryNotFound.
func (s *Service) GetByDate(ctx context.Context, date string) (*entity.Entry, error) {
	if strings.TrimSpace(date) == "" {
		return nil, ErrEntryNotFound
	}
	e, err := s.Repo.GetByDate(ctx, date)
	if err != nil {
		return nil, storeErr("get entry by date", err)
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

// Upsert creates the entry for date, or replaces the content of the existing one.
// Content is stored trimmed. Returns a ValidationError if date or content is missing.
func (s *Service) Upsert(ctx context.Context, date, content string) (*entity.Entry, entity.Outcome, error) {
	if err := entity.ValidateDate(date); err != nil {
		return nil, "", err
	}
	content, err := entity.NormalizeContent(content)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	candidate := &entity.Entry{
		ID:        s.newID(),
		Date:      date,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.Repo.Upsert(ctx, candidate)
	if err != nil {
		return nil, "", storeErr("upsert entry", err)
	}

	outcome := entity.OutcomeUpdated
	if stored.ID == candidate.ID {
		outcome = entity.OutcomeCreated
	}
	metrics.RecordEntryWrite(string(outcome))
	return stored, outcome, nil
}

// UpdateByID replaces the content of the entry with the given id.
// Returns a ValidationError for empty content and ErrEntryNotFound for an unknown id.
func (s *Service) UpdateByID(ctx context.Context, id, content string) (*entity.Entry, error) {
	content, err := entity.NormalizeContent(content)
	if err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrEntryNotFound
	}

	e, err := s.Repo.UpdateContent(ctx, id, content, s.now())
	if err != nil {
		return nil, storeErr("update entry", err)
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}
	metrics.RecordEntryWrite(string(entity.OutcomeUpdated))
	return e, nil
}

// DeleteByID permanently removes the entry with the given id.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrEntryNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrEntryNotFound
		}
		return storeErr("delete entry", err)
	}
	metrics.RecordEntryWrite("deleted")
	return nil
}

// Search returns entries whose content contains query, ignoring case.
func (s *Service) Search(ctx context.Context, query string) ([]*entity.Entry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &entity.ValidationError{Field: "q", Message: "is required"}
	}
	entries, err := s.Repo.Search(ctx, query)
	if err != nil {
		return nil, storeErr("search entries", err)
	}
	return entries, nil
}

// Stats computes aggregate statistics over all entries.
func (s *Service) Stats(ctx context.Context) (entity.Stats, error) {
	entries, err := s.Repo.List(ctx)
	if err != nil {
		return entity.Stats{}, storeErr("compute stats", err)
	}
	return entity.ComputeStats(entries), nil
}

// validID reports whether id can name a stored entry.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

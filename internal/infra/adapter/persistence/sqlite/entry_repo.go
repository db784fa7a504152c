package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"daily-journal/internal/domain/entity"
	"daily-journal/internal/repository"
	"daily-journal/internal/resilience/circuitbreaker"
)

const entryColumns = `id, date, content, created_at, updated_at`

type EntryRepo struct{ db circuitbreaker.Querier }

func NewEntryRepo(db circuitbreaker.Querier) repository.EntryRepository {
	return &EntryRepo{db: db}
}

func (repo *EntryRepo) List(ctx context.Context) ([]*entity.Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM entries
ORDER BY date DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	return scanEntries(rows, "List")
}

func (repo *EntryRepo) GetByDate(ctx context.Context, date string) (*entity.Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM entries
WHERE date = ?
LIMIT 1`
	rows, err := repo.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("GetByDate: QueryContext: %w", err)
	}
	return scanOne(rows, "GetByDate")
}

func (repo *EntryRepo) Upsert(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	const query = `
INSERT INTO entries (id, date, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (date) DO UPDATE
SET content    = excluded.content,
    updated_at = max(excluded.updated_at, entries.created_at)
RETURNING ` + entryColumns
	rows, err := repo.db.QueryContext(ctx, query,
		e.ID, e.Date, e.Content, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("Upsert: QueryContext: %w", err)
	}
	stored, err := scanOne(rows, "Upsert")
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("Upsert: no row returned")
	}
	return stored, nil
}

func (repo *EntryRepo) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*entity.Entry, error) {
	const query = `
UPDATE entries
SET content = ?, updated_at = max(?, created_at)
WHERE id = ?
RETURNING ` + entryColumns
	rows, err := repo.db.QueryContext(ctx, query, content, formatTime(updatedAt), id)
	if err != nil {
		return nil, fmt.Errorf("UpdateContent: QueryContext: %w", err)
	}
	return scanOne(rows, "UpdateContent")
}

func (repo *EntryRepo) Delete(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Delete: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

// Search uses the casefold function registered by db.OpenSQLite; SQLite's own
// LIKE and lower() only fold ASCII.
func (repo *EntryRepo) Search(ctx context.Context, query string) ([]*entity.Entry, error) {
	const stmt = `
SELECT ` + entryColumns + `
FROM entries
WHERE instr(casefold(content), casefold(?)) > 0
ORDER BY date DESC`
	rows, err := repo.db.QueryContext(ctx, stmt, query)
	if err != nil {
		return nil, fmt.Errorf("Search: QueryContext: %w", err)
	}
	return scanEntries(rows, "Search")
}

func scanEntries(rows *sql.Rows, op string) ([]*entity.Entry, error) {
	defer func() { _ = rows.Close() }()

	entries := make([]*entity.Entry, 0, 32)
	for rows.Next() {
		var (
			e                    entity.Entry
			createdAt, updatedAt timestamp
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		e.CreatedAt, e.UpdatedAt = time.Time(createdAt), time.Time(updatedAt)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return entries, nil
}

func scanOne(rows *sql.Rows, op string) (*entity.Entry, error) {
	entries, err := scanEntries(rows, op)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return entries[0], nil
}

// timeLayout is fixed-width UTC so stored values sort and compare as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// timestamp scans a TEXT column written by formatTime. The driver only
// converts to time.Time for declared DATETIME columns, which RETURNING
// does not always report, so both forms are accepted.
type timestamp time.Time

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts = timestamp(v.UTC())
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("timestamp: unsupported type %T", src)
	}
}

func (ts *timestamp) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*ts = timestamp(t.UTC())
	return nil
}

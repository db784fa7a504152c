package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
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
WHERE date = $1
LIMIT 1`
	rows, err := repo.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("GetByDate: QueryContext: %w", err)
	}
	return scanOne(rows, "GetByDate")
}

// Upsert relies on the unique index on date so concurrent saves for one date
// converge on a single row.
func (repo *EntryRepo) Upsert(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	const query = `
INSERT INTO entries (id, date, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (date) DO UPDATE
SET content    = EXCLUDED.content,
    updated_at = GREATEST(EXCLUDED.updated_at, entries.created_at)
RETURNING ` + entryColumns
	rows, err := repo.db.QueryContext(ctx, query,
		e.ID, e.Date, e.Content, e.CreatedAt, e.UpdatedAt)
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
SET content    = $2,
    updated_at = GREATEST($3, created_at)
WHERE id = $1
RETURNING ` + entryColumns
	rows, err := repo.db.QueryContext(ctx, query, id, content, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("UpdateContent: QueryContext: %w", err)
	}
	return scanOne(rows, "UpdateContent")
}

func (repo *EntryRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM entries WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
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

// Search matches query literally: LIKE wildcards in it are escaped.
func (repo *EntryRepo) Search(ctx context.Context, query string) ([]*entity.Entry, error) {
	const stmt = `
SELECT ` + entryColumns + `
FROM entries
WHERE content ILIKE $1 ESCAPE '\'
ORDER BY date DESC`
	rows, err := repo.db.QueryContext(ctx, stmt, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("Search: QueryContext: %w", err)
	}
	return scanEntries(rows, "Search")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanEntries(rows *sql.Rows, op string) ([]*entity.Entry, error) {
	defer func() { _ = rows.Close() }()

	entries := make([]*entity.Entry, 0, 32)
	for rows.Next() {
		var e entity.Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return entries, nil
}

// scanOne returns nil, nil when rows is empty.
func scanOne(rows *sql.Rows, op string) (*entity.Entry, error) {
	entries, err := scanEntries(rows, op)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return entries[0], nil
}

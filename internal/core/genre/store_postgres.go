// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libra/internal/platform/database/schema"
	"github.com/taibuivan/libra/internal/platform/dberr"
)

// maxResolveAttempts bounds the insert/select round-trips.
const maxResolveAttempts = 3

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
GetOrCreate resolves names in one transaction per attempt.

Description: The batch inserts every name with ON CONFLICT DO NOTHING and then
selects all of them. A concurrent writer holding one of the names makes the
insert wait on the unique index until it commits, so the select normally
sees every row; a missing name triggers another attempt. Names are inserted in
sorted order so two overlapping resolves lock rows in the same order.
*/
func (repository *PostgresRepository) GetOrCreate(context context.Context, names []string) (map[string]int, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s)
		SELECT unnest($1::text[])
		ON CONFLICT (%s) DO NOTHING`,
		schema.LibraryGenre.Table, schema.LibraryGenre.Name, schema.LibraryGenre.Name,
	)
	lookup := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.LibraryGenre.ID, schema.LibraryGenre.Name, schema.LibraryGenre.Table, schema.LibraryGenre.Name,
	)

	for attempt := 0; attempt < maxResolveAttempts; attempt++ {
		ids, err := repository.resolveOnce(context, insert, lookup, sorted)
		if err != nil {
			return nil, err
		}
		if len(ids) == len(sorted) {
			return ids, nil
		}
	}

	return nil, dberr.Wrap(fmt.Errorf("genre ids did not converge after %d attempts", maxResolveAttempts), "resolve_genres")
}

func (repository *PostgresRepository) resolveOnce(context context.Context, insert, lookup string, names []string) (map[string]int, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_resolve_genres")
	}
	defer func() { _ = transaction.Rollback(context) }()

	batch := &pgx.Batch{}
	batch.Queue(insert, names)
	batch.Queue(lookup, names)

	results := transaction.SendBatch(context, batch)

	if _, err := results.Exec(); err != nil {
		_ = results.Close()
		return nil, dberr.Wrap(err, "insert_genres")
	}

	rows, err := results.Query()
	if err != nil {
		_ = results.Close()
		return nil, dberr.Wrap(err, "select_genres")
	}

	ids := make(map[string]int, len(names))
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			_ = results.Close()
			return nil, dberr.Wrap(err, "scan_genre")
		}
		ids[name] = id
	}
	rows.Close()

	if err := results.Close(); err != nil {
		return nil, dberr.Wrap(err, "close_genre_batch")
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_resolve_genres")
	}
	return ids, nil
}

func (repository *PostgresRepository) ListBookGenreText(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM %s
		WHERE %s IS NOT NULL AND btrim(%s) <> ''`,
		schema.LibraryBook.Genre, schema.LibraryBook.Table, schema.LibraryBook.Genre, schema.LibraryBook.Genre,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_genres")
	}

	texts, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_book_genres")
	}
	return texts, nil
}

// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package corpus

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libra/internal/platform/database/schema"
	"github.com/taibuivan/libra/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, book *OtherBook) error {
	o := schema.LibraryOtherBook
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s, %s`,
		o.Table,
		o.Title, o.AuthorID, o.YearPublished, o.ISBN, o.Rating, o.Genre, o.GenreIDs, o.Language, o.Synopsis,
		o.ID, o.CreatedAt, o.UpdatedAt,
	)

	genreIDs := book.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	err := repository.pool.QueryRow(context, query,
		book.Title, book.AuthorID, book.YearPublished, book.ISBN, book.Rating,
		book.Genre, genreIDs, book.Language, book.Synopsis,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, "create_otherbook")
}

// ListCandidates uses the GIN-indexed genreids column; cardinality() skips
// entries without genres.
func (repository *PostgresRepository) ListCandidates(context context.Context, excludeAuthorID int) ([]*OtherBook, error) {
	o := schema.LibraryOtherBook
	query := fmt.Sprintf(`
		SELECT o.%s, o.%s, o.%s, a.%s, o.%s
		FROM %s o
		JOIN %s a ON a.%s = o.%s
		WHERE cardinality(o.%s) > 0 AND o.%s <> $1
		ORDER BY o.%s ASC`,
		o.ID, o.Title, o.AuthorID, schema.LibraryAuthor.Name, o.GenreIDs,
		o.Table,
		schema.LibraryAuthor.Table, schema.LibraryAuthor.ID, o.AuthorID,
		o.GenreIDs, o.AuthorID,
		o.ID,
	)

	rows, err := repository.pool.Query(context, query, excludeAuthorID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_candidates")
	}
	defer rows.Close()

	var candidates []*OtherBook
	for rows.Next() {
		book := &OtherBook{}
		if err := rows.Scan(&book.ID, &book.Title, &book.AuthorID, &book.AuthorName, &book.GenreIDs); err != nil {
			return nil, dberr.Wrap(err, "scan_candidate")
		}
		candidates = append(candidates, book)
	}

	return candidates, dberr.Wrap(rows.Err(), "list_candidates")
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.LibraryOtherBook.Table)
	err := repository.pool.QueryRow(context, query).Scan(&total)
	return total, dberr.Wrap(err, "count_otherbooks")
}

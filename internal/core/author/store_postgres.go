// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libra/internal/platform/database/schema"
	"github.com/taibuivan/libra/internal/platform/dberr"
)

// getOrCreateAttempts bounds the insert/select loop when a concurrent writer
// wins the insert but its row is not yet visible.
const getOrCreateAttempts = 3

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, COUNT(*) OVER()
		FROM %s
		ORDER BY %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.LibraryAuthor.ID, schema.LibraryAuthor.Name, schema.LibraryAuthor.Surname, schema.LibraryAuthor.SurnameFirst,
		schema.LibraryAuthor.CoverImage, schema.LibraryAuthor.Description, schema.LibraryAuthor.CreatedAt,
		schema.LibraryAuthor.Table,
		schema.LibraryAuthor.SurnameFirst, schema.LibraryAuthor.ID,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	var (
		authors []*Author
		total   int
	)
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Surname, &a.SurnameFirst, &a.CoverImage, &a.Description, &a.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, dberr.Wrap(rows.Err(), "list_authors")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.LibraryAuthor.ID, schema.LibraryAuthor.Name, schema.LibraryAuthor.Surname, schema.LibraryAuthor.SurnameFirst,
		schema.LibraryAuthor.CoverImage, schema.LibraryAuthor.Description, schema.LibraryAuthor.CreatedAt,
		schema.LibraryAuthor.Table, schema.LibraryAuthor.ID,
	)

	a := &Author{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.Name, &a.Surname, &a.SurnameFirst, &a.CoverImage, &a.Description, &a.CreatedAt,
	)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Author", "get_author")
	}
	return a, nil
}

// GetOrCreate relies on the UNIQUE(name) constraint: the insert is a no-op
// when the name exists, and the follow-up select reads the winner's row.
func (repository *PostgresRepository) GetOrCreate(context context.Context, candidate *Author) (*Author, error) {
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO NOTHING
		RETURNING %s, %s
	`,
		schema.LibraryAuthor.Table, schema.LibraryAuthor.Name, schema.LibraryAuthor.Surname, schema.LibraryAuthor.SurnameFirst,
		schema.LibraryAuthor.Name,
		schema.LibraryAuthor.ID, schema.LibraryAuthor.CreatedAt,
	)
	lookup := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.LibraryAuthor.ID, schema.LibraryAuthor.Name, schema.LibraryAuthor.Surname, schema.LibraryAuthor.SurnameFirst,
		schema.LibraryAuthor.CoverImage, schema.LibraryAuthor.Description, schema.LibraryAuthor.CreatedAt,
		schema.LibraryAuthor.Table, schema.LibraryAuthor.Name,
	)

	for attempt := 0; attempt < getOrCreateAttempts; attempt++ {
		created := *candidate
		err := repository.db.QueryRow(context, insert, candidate.Name, candidate.Surname, candidate.SurnameFirst).
			Scan(&created.ID, &created.CreatedAt)
		if err == nil {
			return &created, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.Wrap(err, "insert_author")
		}

		existing := &Author{}
		err = repository.db.QueryRow(context, lookup, candidate.Name).Scan(
			&existing.ID, &existing.Name, &existing.Surname, &existing.SurnameFirst,
			&existing.CoverImage, &existing.Description, &existing.CreatedAt,
		)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.Wrap(err, "lookup_author")
		}
	}

	return nil, dberr.Wrap(fmt.Errorf("author %q: get-or-create did not converge", candidate.Name), "get_or_create_author")
}

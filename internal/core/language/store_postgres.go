// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libra/internal/platform/database/schema"
	"github.com/taibuivan/libra/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListUsed(context context.Context) ([]*Language, error) {
	b := schema.LibraryBook
	query := fmt.Sprintf(`
		SELECT btrim(%s) AS name, COUNT(*)
		FROM %s
		WHERE %s IS NOT NULL AND btrim(%s) <> ''
		GROUP BY name
		ORDER BY name ASC;
	`, b.Language, b.Table, b.Language, b.Language)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}
	defer rows.Close()

	var languages []*Language
	for rows.Next() {
		language := &Language{}
		if err := rows.Scan(&language.Name, &language.Books); err != nil {
			return nil, dberr.Wrap(err, "scan_language")
		}
		languages = append(languages, language)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}

	return languages, nil
}

// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package files

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/database/schema"
	"github.com/taibuivan/libra/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) SetFilePath(context context.Context, bookID int, path string) error {
	b := schema.LibraryBook
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		b.Table, b.FilePath, b.UpdatedAt, b.ID)

	tag, err := repository.db.Exec(context, query, bookID, path)
	if err != nil {
		return dberr.Wrap(err, "set_file_path")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

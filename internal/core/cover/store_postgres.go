// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
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

// exec runs a single-book update and maps zero affected rows to NOT_FOUND.
func (repository *PostgresRepository) exec(context context.Context, action, query string, args ...any) error {
	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

func (repository *PostgresRepository) SaveCover(context context.Context, stored Stored) error {
	b := schema.LibraryBook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NULL, %s = NOW()
		WHERE %s = $1
	`, b.Table, b.CoverImage, b.CoverImageTiny, b.CoverBlurHash, b.RemoteImageURL, b.UpdatedAt, b.ID)

	return repository.exec(context, "save_cover", query,
		stored.BookID, stored.CoverImage, stored.CoverImageTiny, stored.BlurHash)
}

func (repository *PostgresRepository) SetPending(context context.Context, bookID int, url string) error {
	b := schema.LibraryBook
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		b.Table, b.RemoteImageURL, b.UpdatedAt, b.ID)

	return repository.exec(context, "defer_cover", query, bookID, url)
}

func (repository *PostgresRepository) NextPending(context context.Context) (*Pending, error) {
	b := schema.LibraryBook
	query := fmt.Sprintf(`
		SELECT %s, %s FROM %s
		WHERE %s IS NOT NULL
		ORDER BY %s ASC, %s ASC
		LIMIT 1
	`, b.ID, b.RemoteImageURL, b.Table, b.RemoteImageURL, b.UpdatedAt, b.ID)

	pending := &Pending{}
	err := repository.db.QueryRow(context, query).Scan(&pending.BookID, &pending.URL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "next_pending_cover")
	}
	return pending, nil
}

func (repository *PostgresRepository) ClearPending(context context.Context, bookID int) error {
	b := schema.LibraryBook
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`, b.Table, b.RemoteImageURL, b.ID)

	return repository.exec(context, "clear_pending_cover", query, bookID)
}

func (repository *PostgresRepository) Postpone(context context.Context, bookID int) error {
	b := schema.LibraryBook
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`, b.Table, b.UpdatedAt, b.ID)

	return repository.exec(context, "postpone_cover", query, bookID)
}

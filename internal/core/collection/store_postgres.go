// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
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

// selectCollection returns the column list shared by every read, including a
// correlated member count.
func selectCollection() string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s,
		       (SELECT COUNT(*) FROM %s cb WHERE cb.%s = c.%s)
		FROM %s c
	`,
		schema.LibraryCollection.ID, schema.LibraryCollection.Name,
		schema.LibraryCollection.Description, schema.LibraryCollection.CreatedAt,
		schema.LibraryCollectionBook.Table, schema.LibraryCollectionBook.CollectionID, schema.LibraryCollection.ID,
		schema.LibraryCollection.Table,
	)
}

func scanCollections(rows pgx.Rows) ([]*Collection, error) {
	defer rows.Close()

	collections := []*Collection{}
	for rows.Next() {
		c := &Collection{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.BookCount); err != nil {
			return nil, dberr.Wrap(err, "scan_collection")
		}
		collections = append(collections, c)
	}
	return collections, dberr.Wrap(rows.Err(), "list_collections")
}

func (repository *PostgresRepository) List(context context.Context) ([]*Collection, error) {
	query := selectCollection() + fmt.Sprintf(`ORDER BY lower(c.%s) ASC`, schema.LibraryCollection.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_collections")
	}
	return scanCollections(rows)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Collection, error) {
	query := selectCollection() + fmt.Sprintf(`WHERE c.%s = $1`, schema.LibraryCollection.ID)

	c := &Collection{}
	err := repository.db.QueryRow(context, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.BookCount)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Collection", "get_collection")
	}
	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, collection *Collection) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s
	`,
		schema.LibraryCollection.Table, schema.LibraryCollection.Name, schema.LibraryCollection.Description,
		schema.LibraryCollection.ID, schema.LibraryCollection.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, collection.Name, collection.Description).
		Scan(&collection.ID, &collection.CreatedAt)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("A collection with this name already exists")
	}
	return dberr.Wrap(err, "create_collection")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryCollection.Table, schema.LibraryCollection.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_collection")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Collection")
	}
	return nil
}

func (repository *PostgresRepository) AddBook(context context.Context, collectionID, bookID int) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,
		schema.LibraryCollectionBook.Table, schema.LibraryCollectionBook.CollectionID, schema.LibraryCollectionBook.BookID,
	)

	_, err := repository.db.Exec(context, query, collectionID, bookID)
	return dberr.Wrap(err, "add_collection_book")
}

func (repository *PostgresRepository) RemoveBook(context context.Context, collectionID, bookID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryCollectionBook.Table, schema.LibraryCollectionBook.CollectionID, schema.LibraryCollectionBook.BookID,
	)

	_, err := repository.db.Exec(context, query, collectionID, bookID)
	return dberr.Wrap(err, "remove_collection_book")
}

func (repository *PostgresRepository) ListForBook(context context.Context, bookID int) ([]*Collection, error) {
	query := selectCollection() + fmt.Sprintf(`
		WHERE EXISTS (
			SELECT 1 FROM %s m WHERE m.%s = c.%s AND m.%s = $1
		)
		ORDER BY lower(c.%s) ASC
	`,
		schema.LibraryCollectionBook.Table, schema.LibraryCollectionBook.CollectionID, schema.LibraryCollection.ID,
		schema.LibraryCollectionBook.BookID,
		schema.LibraryCollection.Name,
	)

	rows, err := repository.db.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_collections")
	}
	return scanCollections(rows)
}

// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libra/internal/platform/database/schema"
	"github.com/taibuivan/libra/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed book store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectBook is the projection shared by every read. It joins the author name
// so listings never need a second round-trip.
func selectBook(extraColumns ...string) string {
	b := schema.LibraryBook

	extra := ""
	if len(extraColumns) > 0 {
		extra = ", " + strings.Join(extraColumns, ", ")
	}

	return fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s, a.%s, b.%s, b.%s, b.%s,
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
			b.%s, b.%s, b.%s, b.%s, b.%s,
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s%s
		FROM %s b
		JOIN %s a ON a.%s = b.%s`,
		b.ID, b.Title, b.SortableTitle, b.AuthorID, schema.LibraryAuthor.Name, b.YearPublished, b.ISBN, b.Rating,
		b.BookType, b.Status, b.Genre, b.Language, b.Synopsis, b.Review,
		b.CoverImage, b.CoverImageTiny, b.CoverBlurHash, b.PageCount, b.Series,
		b.Tags, b.Publisher, b.Notes, b.FilePath, b.RemoteImageURL, b.CreatedAt, b.UpdatedAt, extra,
		b.Table,
		schema.LibraryAuthor.Table, schema.LibraryAuthor.ID, b.AuthorID,
	)
}

func scanBook(row pgx.Row, extra ...any) (*Book, error) {
	book := &Book{}
	var status *string

	dest := []any{
		&book.ID, &book.Title, &book.SortableTitle, &book.AuthorID, &book.AuthorName,
		&book.YearPublished, &book.ISBN, &book.Rating,
		&book.BookType, &status, &book.Genre, &book.Language, &book.Synopsis, &book.Review,
		&book.CoverImage, &book.CoverImageTiny, &book.CoverBlurHash, &book.PageCount, &book.Series,
		&book.Tags, &book.Publisher, &book.Notes, &book.FilePath, &book.RemoteImageURL,
		&book.CreatedAt, &book.UpdatedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if status != nil {
		value := Status(*status)
		book.Status = &value
	}
	return book, nil
}

// List returns a filtered page of books and the total count using COUNT(*) OVER().
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	b := schema.LibraryBook

	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectBook("COUNT(*) OVER() AS total_count"))
	queryBuilder.WriteString(" WHERE 1 = 1")

	var args []any
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (b.%s ILIKE $%d OR a.%s ILIKE $%d OR b.%s ILIKE $%d OR CAST(b.%s AS TEXT) ILIKE $%d)",
			b.Title, argID, schema.LibraryAuthor.Name, argID, b.ISBN, argID, b.YearPublished, argID,
		))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", b.BookType, argID))
		args = append(args, string(filter.Type))
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", b.Status, argID))
		args = append(args, string(filter.Status))
		argID++
	}

	if filter.Series != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", b.Series, argID))
		args = append(args, filter.Series)
		argID++
	}

	if filter.Author != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND lower(a.%s) = lower($%d)", schema.LibraryAuthor.Name, argID))
		args = append(args, filter.Author)
		argID++
	}

	if filter.AuthorID != 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", b.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY b.%s ASC, b.%s ASC LIMIT $%d OFFSET $%d", b.SortableTitle, b.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var (
		books []*Book
		total int
	)
	for rows.Next() {
		book, err := scanBook(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	return books, total, nil
}

// FindByID returns one book.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Book, error) {
	query := selectBook() + fmt.Sprintf(" WHERE b.%s = $1", schema.LibraryBook.ID)

	book, err := scanBook(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Book", "get_book")
	}
	return book, nil
}

// FindByTitleAndAuthor returns the lowest-id book whose title and author name
// match case-insensitively.
func (repository *PostgresRepository) FindByTitleAndAuthor(context context.Context, title, authorName string) (*Book, error) {
	query := selectBook() + fmt.Sprintf(`
		WHERE lower(b.%s) = lower($1) AND lower(a.%s) = lower($2)
		ORDER BY b.%s ASC
		LIMIT 1`,
		schema.LibraryBook.Title, schema.LibraryAuthor.Name, schema.LibraryBook.ID,
	)

	book, err := scanBook(repository.pool.QueryRow(context, query, title, authorName))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Book", "find_book_by_title_author")
	}
	return book, nil
}

// Create inserts a book.
func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	b := schema.LibraryBook
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s, %s, %s
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING %s, %s, %s`,
		b.Table,
		b.Title, b.SortableTitle, b.AuthorID, b.YearPublished, b.ISBN, b.Rating, b.BookType, b.Status, b.Genre, b.Language,
		b.Synopsis, b.Review, b.PageCount, b.Series, b.Tags, b.Publisher, b.Notes, b.RemoteImageURL, b.CoverImage,
		b.ID, b.CreatedAt, b.UpdatedAt,
	)

	var status *string
	if book.Status != nil {
		value := string(*book.Status)
		status = &value
	}

	err := repository.pool.QueryRow(context, query,
		book.Title, book.SortableTitle, book.AuthorID, book.YearPublished, book.ISBN, book.Rating,
		string(book.BookType), status, book.Genre, book.Language,
		book.Synopsis, book.Review, book.PageCount, book.Series, book.Tags, book.Publisher, book.Notes,
		book.RemoteImageURL, book.CoverImage,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, "create_book")
}

// Update builds a dynamic SET clause from the non-nil patch fields.
func (repository *PostgresRepository) Update(context context.Context, id int, patch Patch, authorID int, sortableTitle *string) error {
	b := schema.LibraryBook

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", b.Table, b.UpdatedAt))

	var args []any
	argID := 1

	set := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Title != nil {
		set(b.Title, *patch.Title)
	}
	if sortableTitle != nil {
		set(b.SortableTitle, *sortableTitle)
	}
	if authorID != 0 {
		set(b.AuthorID, authorID)
	}
	if patch.YearPublished != nil {
		set(b.YearPublished, *patch.YearPublished)
	}
	if patch.ISBN != nil {
		set(b.ISBN, *patch.ISBN)
	}
	if patch.Rating != nil {
		set(b.Rating, *patch.Rating)
	}
	if patch.BookType != nil {
		set(b.BookType, string(*patch.BookType))
	}
	if patch.Status != nil {
		set(b.Status, string(*patch.Status))
	}
	if patch.Genre != nil {
		set(b.Genre, *patch.Genre)
	}
	if patch.Language != nil {
		set(b.Language, *patch.Language)
	}
	if patch.Synopsis != nil {
		set(b.Synopsis, *patch.Synopsis)
	}
	if patch.Review != nil {
		set(b.Review, *patch.Review)
	}
	if patch.PageCount != nil {
		set(b.PageCount, *patch.PageCount)
	}
	if patch.Series != nil {
		set(b.Series, *patch.Series)
	}
	if patch.Tags != nil {
		set(b.Tags, *patch.Tags)
	}
	if patch.Publisher != nil {
		set(b.Publisher, *patch.Publisher)
	}
	if patch.Notes != nil {
		set(b.Notes, *patch.Notes)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", b.ID, argID))
	args = append(args, id)

	tag, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}

	if tag.RowsAffected() == 0 {
		return dberr.WrapNotFound(pgx.ErrNoRows, "Book", "update_book")
	}
	return nil
}

// Delete removes a book.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryBook.Table, schema.LibraryBook.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if tag.RowsAffected() == 0 {
		return dberr.WrapNotFound(pgx.ErrNoRows, "Book", "delete_book")
	}
	return nil
}

// ListSeries returns the distinct series names in use.
func (repository *PostgresRepository) ListSeries(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM %s
		WHERE %s IS NOT NULL AND btrim(%s) <> ''
		ORDER BY %s ASC`,
		schema.LibraryBook.Series, schema.LibraryBook.Table,
		schema.LibraryBook.Series, schema.LibraryBook.Series, schema.LibraryBook.Series,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}

	series, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_series")
	}
	return series, nil
}

// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package files

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/storage"
	"github.com/taibuivan/libra/internal/platform/validate"
	"github.com/taibuivan/libra/pkg/slug"
)

// BookReader loads the book a file belongs to.
type BookReader interface {
	Get(context context.Context, id int) (*book.Book, error)
}

type Service struct {
	repo   Repository
	books  BookReader
	disk   *storage.Dir
	logger *slog.Logger
}

func NewService(repo Repository, books BookReader, disk *storage.Dir, logger *slog.Logger) *Service {
	return &Service{repo: repo, books: books, disk: disk, logger: logger}
}

/*
Attach stores reader as the book's file.

Description: The type is taken from the uploaded file name's extension and
must be one of [SupportedExtensions]. The file is saved as book<ext>,
replacing a previous file of any type.
*/
func (service *Service) Attach(context context.Context, bookID int, filename string, reader io.Reader) (*Attached, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !Supported(ext) {
		return nil, validate.RequiredError(FieldFile, "unsupported file type: "+ext)
	}

	if _, err := service.books.Get(context, bookID); err != nil {
		return nil, err
	}

	path, err := service.disk.Write(bookID, fileStem, ext, reader)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := service.repo.SetFilePath(context, bookID, path); err != nil {
		return nil, err
	}

	service.logger.Info("book_file_attached",
		slog.Int("book_id", bookID),
		slog.String("file_path", path),
	)
	return &Attached{BookID: bookID, FilePath: path}, nil
}

// Open returns a stored file with a download name of the form
// "author-title.ext".
func (service *Service) Open(context context.Context, bookID int, name string) (*Download, error) {
	target, err := service.books.Get(context, bookID)
	if err != nil {
		return nil, err
	}

	file, info, err := service.disk.Open(bookID, name)
	if err != nil {
		return nil, err
	}

	return &Download{
		File: file,
		Info: info,
		Name: DownloadName(target, filepath.Ext(name)),
	}, nil
}

// DownloadName builds the client-facing file name for a book.
func DownloadName(target *book.Book, ext string) string {
	base := slug.From(target.AuthorName + " " + target.Title)
	if base == "" {
		base = fileStem
	}
	return base + strings.ToLower(ext)
}

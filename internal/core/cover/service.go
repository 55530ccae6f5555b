// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/constants"
	"github.com/taibuivan/libra/internal/platform/metrics"
	"github.com/taibuivan/libra/internal/platform/storage"
	"github.com/taibuivan/libra/internal/platform/validate"
)

// BookReader checks that a book exists before a cover is written for it.
type BookReader interface {
	Get(context context.Context, id int) (*book.Book, error)
}

type Service struct {
	repo   Repository
	books  BookReader
	disk   *storage.Dir
	client *http.Client
	logger *slog.Logger
}

func NewService(repo Repository, books BookReader, disk *storage.Dir, client *http.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, books: books, disk: disk, client: client, logger: logger}
}

/*
Store saves data as the book's cover.

Description: The image is decoded first; anything that is not a JPEG, PNG,
GIF or WebP is rejected with 422. The original keeps its format, the
thumbnail is always JPEG. Saving a cover clears any pending remote marker.
*/
func (service *Service) Store(context context.Context, bookID int, data []byte) (*Stored, error) {
	if _, err := service.books.Get(context, bookID); err != nil {
		return nil, err
	}

	rendered, err := render(data)
	if err != nil {
		return nil, apperr.Unprocessable("Cover is not a supported image")
	}

	original, err := service.disk.Write(bookID, coverStem, rendered.ext, bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	tiny, err := service.disk.Write(bookID, tinyStem, ".jpg", bytes.NewReader(rendered.tiny))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	stored := Stored{
		BookID:         bookID,
		CoverImage:     original,
		CoverImageTiny: tiny,
		BlurHash:       rendered.blurHash,
	}
	if err := service.repo.SaveCover(context, stored); err != nil {
		return nil, err
	}

	service.logger.Info("cover_stored",
		slog.Int("book_id", bookID),
		slog.String("cover_image", original),
		slog.Int("bytes", len(data)),
	)
	return &stored, nil
}

// Open returns a stored cover file of a book.
func (service *Service) Open(bookID int, name string) (*os.File, fs.FileInfo, error) {
	return service.disk.Open(bookID, name)
}

// Download fetches url and stores it as the book's cover.
func (service *Service) Download(context context.Context, bookID int, url string) (*Stored, error) {
	data, err := service.fetch(context, url)
	if err != nil {
		metrics.CoverDownloadsTotal.WithLabelValues("failed").Inc()
		return nil, apperr.BadGateway("Could not download cover", err)
	}

	stored, err := service.Store(context, bookID, data)
	if err != nil {
		metrics.CoverDownloadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.CoverDownloadsTotal.WithLabelValues("ok").Inc()
	return stored, nil
}

// Defer records url as the book's pending cover for the worker to fetch.
func (service *Service) Defer(context context.Context, bookID int, url string) error {
	url = strings.TrimSpace(url)

	validator := &validate.Validator{}
	validator.Required(FieldURL, url).URL(FieldURL, url)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.SetPending(context, bookID, url); err != nil {
		return err
	}

	service.logger.Info("cover_deferred", slog.Int("book_id", bookID))
	return nil
}

/*
ProcessPending downloads one pending cover.

Description: The least recently attempted book with a marker is picked. An
empty marker is cleared without a download. A failed download leaves the
marker in place and moves the book to the back of the queue, so one broken
URL cannot starve the others.
*/
func (service *Service) ProcessPending(context context.Context) (*Pass, error) {
	pending, err := service.repo.NextPending(context)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return &Pass{Message: "No books with a pending cover"}, nil
	}

	if strings.TrimSpace(pending.URL) == "" {
		if err := service.repo.ClearPending(context, pending.BookID); err != nil {
			return nil, err
		}
		return &Pass{Processed: true, BookID: pending.BookID, Message: "Cleared empty cover marker"}, nil
	}

	if _, err := service.Download(context, pending.BookID, pending.URL); err != nil {
		service.logger.Warn("cover_download_failed",
			slog.Int("book_id", pending.BookID),
			slog.String("url", pending.URL),
			slog.Any("error", err),
		)
		if postponeErr := service.repo.Postpone(context, pending.BookID); postponeErr != nil {
			return nil, postponeErr
		}
		return &Pass{BookID: pending.BookID, Message: "Cover download failed"}, err
	}

	return &Pass{Processed: true, BookID: pending.BookID, Message: "Cover image downloaded and saved"}, nil
}

// Drain runs passes until nothing is pending or a book comes round again.
// It returns how many covers were handled.
func (service *Service) Drain(context context.Context) (int, error) {
	seen := map[int]bool{}
	handled := 0

	for {
		if err := context.Err(); err != nil {
			return handled, err
		}

		pass, err := service.ProcessPending(context)
		if pass == nil {
			return handled, err
		}
		if pass.BookID == 0 || seen[pass.BookID] {
			return handled, nil
		}
		seen[pass.BookID] = true
		if pass.Processed {
			handled++
		}
	}
}

func (service *Service) fetch(context context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	response, err := service.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", response.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, constants.MaxCoverBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > constants.MaxCoverBytes {
		return nil, fmt.Errorf("cover exceeds %d bytes", constants.MaxCoverBytes)
	}
	return data, nil
}

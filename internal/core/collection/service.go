// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/platform/validate"
)

// BookReader confirms that a book exists before it joins a collection.
type BookReader interface {
	Get(context context.Context, id int) (*book.Book, error)
}

type Service struct {
	repo   Repository
	books  BookReader
	logger *slog.Logger
}

func NewService(repo Repository, books BookReader, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

func (service *Service) List(context context.Context) ([]*Collection, error) {
	return service.repo.List(context)
}

// Create adds a collection. A duplicate name is a CONFLICT.
func (service *Service) Create(context context.Context, draft Draft) (*Collection, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if err := validate.Struct(draft); err != nil {
		return nil, err
	}

	collection := &Collection{Name: draft.Name, Description: draft.Description}
	if err := service.repo.Create(context, collection); err != nil {
		return nil, err
	}

	service.logger.Info("collection_created", slog.Int("collection_id", collection.ID), slog.String("name", collection.Name))
	return collection, nil
}

func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("collection_deleted", slog.Int("collection_id", id))
	return nil
}

// AddBook puts a book in a collection. Both must exist; repeating the call is
// harmless.
func (service *Service) AddBook(context context.Context, collectionID, bookID int) error {
	if err := service.ensureBoth(context, collectionID, bookID); err != nil {
		return err
	}
	if err := service.repo.AddBook(context, collectionID, bookID); err != nil {
		return err
	}

	service.logger.Info("collection_book_added", slog.Int("collection_id", collectionID), slog.Int("book_id", bookID))
	return nil
}

// RemoveBook takes a book out of a collection. Removing a non-member is
// harmless; an unknown collection or book is NOT_FOUND.
func (service *Service) RemoveBook(context context.Context, collectionID, bookID int) error {
	if err := service.ensureBoth(context, collectionID, bookID); err != nil {
		return err
	}
	if err := service.repo.RemoveBook(context, collectionID, bookID); err != nil {
		return err
	}

	service.logger.Info("collection_book_removed", slog.Int("collection_id", collectionID), slog.Int("book_id", bookID))
	return nil
}

// ForBook lists the collections containing a book.
func (service *Service) ForBook(context context.Context, bookID int) ([]*Collection, error) {
	if _, err := service.books.Get(context, bookID); err != nil {
		return nil, err
	}
	return service.repo.ListForBook(context, bookID)
}

func (service *Service) ensureBoth(context context.Context, collectionID, bookID int) error {
	if _, err := service.repo.FindByID(context, collectionID); err != nil {
		return err
	}
	_, err := service.books.Get(context, bookID)
	return err
}

// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/libra/internal/core/extract"
	"github.com/taibuivan/libra/internal/platform/validate"
)

const maxNameLen = 300

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, limit, offset int) ([]*Author, int, error) {
	return service.repo.List(context, limit, offset)
}

func (service *Service) Get(context context.Context, id int) (*Author, error) {
	return service.repo.FindByID(context, id)
}

// GetOrCreateByName looks the author up by exact (case-sensitive) name and
// creates it with derived surname fields on first reference.
func (service *Service) GetOrCreateByName(context context.Context, name string) (*Author, error) {
	name = strings.TrimSpace(name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	surname, surnameFirst := extract.SplitAuthorName(name)
	author, err := service.repo.GetOrCreate(context, &Author{
		Name:         name,
		Surname:      surname,
		SurnameFirst: surnameFirst,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Debug("author_resolved", slog.Int("author_id", author.ID), slog.String("name", author.Name))
	return author, nil
}

// ResolveID is [Service.GetOrCreateByName] returning only the id.
func (service *Service) ResolveID(context context.Context, name string) (int, error) {
	author, err := service.GetOrCreateByName(context, name)
	if err != nil {
		return 0, err
	}
	return author.ID, nil
}

// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"context"
	"log/slog"
)

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

func (service *Service) ListUsed(context context.Context) ([]*Language, error) {
	languages, err := service.repo.ListUsed(context)
	if err != nil {
		return nil, err
	}
	if languages == nil {
		languages = []*Language{}
	}
	return languages, nil
}

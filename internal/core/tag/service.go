// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/taibuivan/libra/pkg/query"
	"github.com/taibuivan/libra/pkg/slice"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
ListUsed counts the books per tag.

Description: Tags compare case-insensitively; the first spelling seen is the
one reported. A tag repeated on one book counts once. The result is ordered by
count descending, then name.
*/
func (service *Service) ListUsed(context context.Context) ([]*Tag, error) {
	texts, err := service.repo.ListBookTagText(context)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*Tag)
	for _, text := range texts {
		for _, name := range slice.Unique(query.StringSlice(text)) {
			key := strings.ToLower(name)
			if seen, ok := byKey[key]; ok {
				seen.Books++
				continue
			}
			byKey[key] = &Tag{Name: name, Books: 1}
		}
	}

	tags := make([]*Tag, 0, len(byKey))
	for _, tag := range byKey {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Books != tags[j].Books {
			return tags[i].Books > tags[j].Books
		}
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})

	service.logger.Debug("tags_counted", slog.Int("books", len(texts)), slog.Int("tags", len(tags)))
	return tags, nil
}

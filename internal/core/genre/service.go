// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

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
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ParseNames splits a comma-joined genre field into trimmed, unique names in
// first-seen order.
func ParseNames(text string) []string {
	return slice.Unique(query.StringSlice(text))
}

// NormalizeNames trims a list of names, dropping empties and repeats.
func NormalizeNames(names []string) []string {
	trimmed := slice.Filter(slice.Map(names, strings.TrimSpace), func(name string) bool {
		return name != ""
	})
	return slice.Unique(trimmed)
}

// ResolveText is [Service.Resolve] for a comma-joined genre field.
func (service *Service) ResolveText(context context.Context, text string) ([]int, error) {
	return service.resolve(context, ParseNames(text))
}

/*
Resolve maps genre names to ids, creating unknown names.

Returns the ids sorted ascending with no duplicates; empty input yields an
empty slice and no error. Calling it twice with the same input yields the same
ids.
*/
func (service *Service) Resolve(context context.Context, names []string) ([]int, error) {
	return service.resolve(context, NormalizeNames(names))
}

func (service *Service) resolve(context context.Context, names []string) ([]int, error) {
	if len(names) == 0 {
		return []int{}, nil
	}

	byName, err := service.repo.GetOrCreate(context, names)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(byName))
	ids := make([]int, 0, len(byName))
	for _, name := range names {
		id, ok := byName[name]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids, nil
}

// ListUsed returns the distinct genre names used by library books, sorted.
func (service *Service) ListUsed(context context.Context) ([]string, error) {
	texts, err := service.repo.ListBookGenreText(context)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, text := range texts {
		names = append(names, ParseNames(text)...)
	}

	names = slice.Unique(names)
	if names == nil {
		names = []string{}
	}
	sort.Strings(names)
	return names, nil
}

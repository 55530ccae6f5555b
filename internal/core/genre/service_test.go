// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/genre"
)

type memoryRepo struct {
	mu    sync.Mutex
	ids   map[string]int
	texts []string
	calls int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{ids: map[string]int{}}
}

func (repo *memoryRepo) GetOrCreate(_ context.Context, names []string) (map[string]int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls++

	out := make(map[string]int, len(names))
	for _, name := range names {
		id, ok := repo.ids[name]
		if !ok {
			id = len(repo.ids) + 1
			repo.ids[name] = id
		}
		out[name] = id
	}
	return out, nil
}

func (repo *memoryRepo) ListBookGenreText(context.Context) ([]string, error) {
	return repo.texts, nil
}

func newService(repo *memoryRepo) *genre.Service {
	return genre.NewService(repo, slog.New(slog.DiscardHandler))
}

/*
TestResolve_SortedUniqueIdempotent checks ordering, deduplication and
idempotence for both input shapes.
*/
func TestResolve_SortedUniqueIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)
	context := context.Background()

	// Seed so that later names get lower ids than earlier ones.
	_, err := service.Resolve(context, []string{"Sci-Fi", "Classics"})
	require.NoError(t, err)

	first, err := service.ResolveText(context, " Fantasy, Classics ,Fantasy,, Sci-Fi")
	require.NoError(t, err)
	assert.True(t, sort.IntsAreSorted(first))
	assert.Equal(t, []int{1, 2, 3}, first)

	second, err := service.Resolve(context, []string{"Sci-Fi", " Fantasy", "Classics", ""})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, repo.ids, 3)
}

func TestResolve_Empty(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)

	ids, err := service.ResolveText(context.Background(), " , ")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)

	ids, err = service.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Zero(t, repo.calls)
}

/*
TestResolve_Concurrent resolves the same new name from many goroutines and
expects a single id.
*/
func TestResolve_Concurrent(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)

	var wg sync.WaitGroup
	results := make([][]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids, err := service.ResolveText(context.Background(), "Horror")
			assert.NoError(t, err)
			results[i] = ids
		}(i)
	}
	wg.Wait()

	for _, ids := range results {
		assert.Equal(t, results[0], ids)
	}
	assert.Len(t, repo.ids, 1)
}

func TestListUsed(t *testing.T) {
	repo := newMemoryRepo()
	repo.texts = []string{"Fantasy, Classics", "Classics,Horror", " "}

	names, err := newService(repo).ListUsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Classics", "Fantasy", "Horror"}, names)
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, []string{"Fantasy", "Classics"}, genre.ParseNames("Fantasy, Classics, Fantasy"))
	assert.Nil(t, genre.ParseNames(""))
	assert.Equal(t, []string{"A", "B"}, genre.NormalizeNames([]string{" A", "B ", "", "A"}))
}

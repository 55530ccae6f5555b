// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"sort"
	"strings"
)

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	source, target := []rune(a), []rune(b)
	if len(source) == 0 {
		return len(target)
	}
	if len(target) == 0 {
		return len(source)
	}

	previous := make([]int, len(target)+1)
	current := make([]int, len(target)+1)
	for j := range previous {
		previous[j] = j
	}

	for i := 1; i <= len(source); i++ {
		current[0] = i
		for j := 1; j <= len(target); j++ {
			cost := 1
			if source[i-1] == target[j-1] {
				cost = 0
			}
			current[j] = min(
				previous[j]+1,
				current[j-1]+1,
				previous[j-1]+cost,
			)
		}
		previous, current = current, previous
	}

	return previous[len(target)]
}

// SortByTitleDistance orders results by how close their title is to query,
// case-insensitively. Equal distances keep the provider's order.
func SortByTitleDistance(results []Result, query string) {
	query = strings.ToLower(query)

	distances := make(map[int]int, len(results))
	for index := range results {
		distances[index] = Levenshtein(strings.ToLower(results[index].Title), query)
	}

	indexes := make([]int, len(results))
	for index := range indexes {
		indexes[index] = index
	}
	sort.SliceStable(indexes, func(i, j int) bool {
		return distances[indexes[i]] < distances[indexes[j]]
	})

	sorted := make([]Result, len(results))
	for position, index := range indexes {
		sorted[position] = results[index]
	}
	copy(results, sorted)
}

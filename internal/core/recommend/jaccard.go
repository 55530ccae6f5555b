// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recommend ranks the reference corpus by genre overlap with a book in
the owner's library.

Similarity is the Jaccard index of the two genre-id sets. Candidates by the
same author as the target are never suggested, and zero-overlap candidates
never qualify.
*/
package recommend

import "sort"

// Candidate is a corpus book considered for ranking.
type Candidate struct {
	ID       int
	AuthorID int
	Title    string
	Author   string
	GenreIDs []int
}

// Scored is a candidate with its similarity to the target.
type Scored struct {
	Candidate
	Similarity float64
}

// Jaccard returns |a ∩ b| / |a ∪ b| treating both slices as sets. Two empty
// sets have similarity 0.
func Jaccard(a, b []int) float64 {
	setA := toSet(a)
	setB := toSet(b)

	union := len(setA)
	intersection := 0
	for id := range setB {
		if _, ok := setA[id]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Rank scores candidates against target, drops zero similarity, orders by
// similarity descending and keeps at most topN. Equal scores keep the input
// order.
func Rank(target []int, candidates []Candidate, topN int) []Scored {
	if topN <= 0 {
		return []Scored{}
	}

	scored := make([]Scored, 0, len(candidates))
	for _, candidate := range candidates {
		similarity := Jaccard(target, candidate.GenreIDs)
		if similarity == 0 {
			continue
		}
		scored = append(scored, Scored{Candidate: candidate, Similarity: similarity})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

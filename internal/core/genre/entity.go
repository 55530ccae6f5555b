// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genre is the genre dictionary: a shared, append-only mapping from
genre name to a stable integer id.

Genre ids are the feature vector the recommendation engine compares, so the
mapping must be deterministic. Unknown names are created lazily; concurrent
creation of the same name is closed by a UNIQUE constraint and a
get-or-create retry.
*/
package genre

// Genre is a single dictionary entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

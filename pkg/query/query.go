// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query splits list-valued strings coming from query parameters,
// CSV cells and comma-joined columns.
package query

import "strings"

// StringSlice splits a comma-separated string into trimmed, non-empty parts.
func StringSlice(val string) []string {
	return Split(val, ",")
}

// Split splits val on sep, trimming each part and dropping empties.
func Split(val, sep string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, sep) {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

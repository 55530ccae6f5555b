// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/libra/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", 1, pagination.DefaultLimit, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=0&limit=0", 1, pagination.DefaultLimit, 0},
		{"?page=-2&limit=500", 1, pagination.MaxLimit, 0},
		{"?page=two&limit=ten", 1, pagination.DefaultLimit, 0},
	}

	for _, tt := range tests {
		params := pagination.FromRequest(httptest.NewRequest("GET", "/books"+tt.query, nil))
		assert.Equal(t, tt.page, params.Page, tt.query)
		assert.Equal(t, tt.limit, params.Limit, tt.query)
		assert.Equal(t, tt.offset, params.Offset(), tt.query)
	}
}

func TestParams_Meta(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 20}
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 20, Total: 41, TotalPages: 3}, params.Meta(41))
	assert.Zero(t, params.Meta(0).TotalPages)
}

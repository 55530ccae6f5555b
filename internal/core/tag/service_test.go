// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/tag"
)

type stubRepo []string

func (repo stubRepo) ListBookTagText(context.Context) ([]string, error) {
	return repo, nil
}

func TestService_ListUsed(t *testing.T) {
	tests := []struct {
		name  string
		texts stubRepo
		want  []*tag.Tag
	}{
		{name: "no tags", texts: nil, want: []*tag.Tag{}},
		{
			name:  "counts per book",
			texts: stubRepo{"favourite, reread", "Favourite", "signed,signed", "reread"},
			want: []*tag.Tag{
				{Name: "favourite", Books: 2},
				{Name: "reread", Books: 2},
				{Name: "signed", Books: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := tag.NewService(tt.texts, slog.New(slog.DiscardHandler))
			tags, err := service.ListUsed(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, tags)
		})
	}
}

func TestHandler_ListTags(t *testing.T) {
	router := chi.NewRouter()
	tag.NewHandler(tag.NewService(stubRepo{"maps"}, slog.New(slog.DiscardHandler))).RegisterRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/tags", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[{"name":"maps","books":1}]}`, recorder.Body.String())
}

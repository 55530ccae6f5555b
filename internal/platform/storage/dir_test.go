// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/storage"
)

func TestDir_WriteReplacesSameStem(t *testing.T) {
	root := t.TempDir()
	dir, err := storage.NewDir(root)
	require.NoError(t, err)

	path, err := dir.Write(7, "cover", ".jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "7/cover.jpg", path)

	_, err = dir.Write(7, "cover_tiny", ".jpg", strings.NewReader("tiny"))
	require.NoError(t, err)

	path, err = dir.Write(7, "cover", ".png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "7/cover.png", path)

	entries, err := os.ReadDir(filepath.Join(root, "7"))
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"cover.png", "cover_tiny.jpg"}, names)

	file, info, err := dir.Open(7, "cover.png")
	require.NoError(t, err)
	defer file.Close()
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "png", string(body))
	assert.EqualValues(t, 3, info.Size())
}

func TestDir_OpenRejectsTraversal(t *testing.T) {
	dir, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../7/cover.jpg", "a/b", `a\b`, ".hidden", "missing.pdf"} {
		t.Run(name, func(t *testing.T) {
			_, _, err := dir.Open(7, name)
			assert.True(t, apperr.IsNotFound(err))
		})
	}

	_, err = dir.Write(7, "../escape", ".txt", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestDir_RemoveBook(t *testing.T) {
	dir, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)

	_, err = dir.Write(3, "book", ".epub", strings.NewReader("epub"))
	require.NoError(t, err)
	require.NoError(t, dir.RemoveBook(3))

	_, _, err = dir.Open(3, "book.epub")
	assert.True(t, apperr.IsNotFound(err))
	require.NoError(t, dir.RemoveBook(3), "removing twice is harmless")
}

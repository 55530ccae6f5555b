// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage keeps per-book files on local disk.

Layout: <root>/<bookID>/<stem><ext>. A book holds at most one file per stem,
so writing cover.png removes an older cover.jpg.
*/
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/taibuivan/libra/internal/platform/apperr"
)

// Dir is a root directory of per-book folders. Safe for concurrent use.
type Dir struct {
	root string
	mu   sync.RWMutex
}

// NewDir creates root if needed.
func NewDir(root string) (*Dir, error) {
	if root == "" {
		return nil, errors.New("storage root cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Dir{root: root}, nil
}

// Root returns the directory the store writes under.
func (dir *Dir) Root() string { return dir.root }

// Write stores reader as <bookID>/<stem><ext> and returns that relative
// path. The file is written to a temp name first and renamed into place.
func (dir *Dir) Write(bookID int, stem, ext string, reader io.Reader) (string, error) {
	name := stem + ext
	if !validName(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	dir.mu.Lock()
	defer dir.mu.Unlock()

	folder := dir.folder(bookID)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("create book folder: %w", err)
	}

	temp, err := os.CreateTemp(folder, "."+stem+"-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := io.Copy(temp, reader); err != nil {
		temp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := temp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	target := filepath.Join(folder, name)
	if err := os.Rename(temp.Name(), target); err != nil {
		return "", fmt.Errorf("rename %s: %w", name, err)
	}

	if err := dir.removeSiblings(folder, stem, name); err != nil {
		return "", err
	}

	return Relative(bookID, name), nil
}

// Open returns the named file of a book. A missing file is NOT_FOUND.
func (dir *Dir) Open(bookID int, name string) (*os.File, fs.FileInfo, error) {
	if !validName(name) {
		return nil, nil, apperr.NotFound("File")
	}

	dir.mu.RLock()
	defer dir.mu.RUnlock()

	file, err := os.Open(filepath.Join(dir.folder(bookID), name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, apperr.NotFound("File")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", name, err)
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		file.Close()
		return nil, nil, apperr.NotFound("File")
	}
	return file, info, nil
}

// RemoveBook deletes every stored file of a book.
func (dir *Dir) RemoveBook(bookID int) error {
	dir.mu.Lock()
	defer dir.mu.Unlock()

	if err := os.RemoveAll(dir.folder(bookID)); err != nil {
		return fmt.Errorf("remove book folder: %w", err)
	}
	return nil
}

// Relative is the stored path form, "<bookID>/<name>".
func Relative(bookID int, name string) string {
	return strconv.Itoa(bookID) + "/" + name
}

func (dir *Dir) folder(bookID int) string {
	return filepath.Join(dir.root, strconv.Itoa(bookID))
}

func (dir *Dir) removeSiblings(folder, stem, keep string) error {
	matches, err := filepath.Glob(filepath.Join(folder, stem+".*"))
	if err != nil {
		return fmt.Errorf("list %s files: %w", stem, err)
	}
	for _, match := range matches {
		if filepath.Base(match) == keep {
			continue
		}
		if err := os.Remove(match); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", filepath.Base(match), err)
		}
	}
	return nil
}

// validName rejects anything that could leave the book folder.
func validName(name string) bool {
	return name != "" &&
		name != "." && name != ".." &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`) &&
		filepath.Base(name) == name
}

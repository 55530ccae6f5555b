// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libra/internal/core/book"
	"github.com/taibuivan/libra/internal/core/cover"
	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/ctxutil"
	"github.com/taibuivan/libra/internal/platform/sec"
	"github.com/taibuivan/libra/internal/platform/storage"
)

// # Fakes

type fakeRepo struct {
	covers  map[int]cover.Stored
	pending map[int]string
	order   []int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{covers: map[int]cover.Stored{}, pending: map[int]string{}}
}

func (repo *fakeRepo) SaveCover(_ context.Context, stored cover.Stored) error {
	repo.covers[stored.BookID] = stored
	repo.drop(stored.BookID)
	return nil
}

func (repo *fakeRepo) SetPending(_ context.Context, bookID int, url string) error {
	if bookID > 100 {
		return apperr.NotFound("Book")
	}
	repo.drop(bookID)
	repo.pending[bookID] = url
	repo.order = append(repo.order, bookID)
	return nil
}

func (repo *fakeRepo) NextPending(context.Context) (*cover.Pending, error) {
	if len(repo.order) == 0 {
		return nil, nil
	}
	bookID := repo.order[0]
	return &cover.Pending{BookID: bookID, URL: repo.pending[bookID]}, nil
}

func (repo *fakeRepo) ClearPending(_ context.Context, bookID int) error {
	repo.drop(bookID)
	return nil
}

func (repo *fakeRepo) Postpone(_ context.Context, bookID int) error {
	url := repo.pending[bookID]
	repo.drop(bookID)
	repo.pending[bookID] = url
	repo.order = append(repo.order, bookID)
	return nil
}

func (repo *fakeRepo) drop(bookID int) {
	delete(repo.pending, bookID)
	kept := repo.order[:0]
	for _, id := range repo.order {
		if id != bookID {
			kept = append(kept, id)
		}
	}
	repo.order = kept
}

type stubBooks struct{}

func (stubBooks) Get(_ context.Context, id int) (*book.Book, error) {
	if id > 100 {
		return nil, apperr.NotFound("Book")
	}
	return &book.Book{ID: id}, nil
}

func pngImage(t *testing.T, width, height int) []byte {
	t.Helper()
	source := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			source.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, source))
	return buffer.Bytes()
}

type fixture struct {
	service *cover.Service
	repo    *fakeRepo
	root    string
	remote  *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	disk, err := storage.NewDir(root)
	require.NoError(t, err)

	payload := pngImage(t, 200, 100)
	remote := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/cover.png":
			_, _ = writer.Write(payload)
		case "/text":
			_, _ = writer.Write([]byte("not an image"))
		default:
			http.NotFound(writer, request)
		}
	}))
	t.Cleanup(remote.Close)

	repo := newFakeRepo()
	service := cover.NewService(repo, stubBooks{}, disk, remote.Client(), slog.New(slog.DiscardHandler))
	return &fixture{service: service, repo: repo, root: root, remote: remote}
}

// # Store

/*
TestService_Store checks the files written for an upload, the thumbnail
geometry and that a stored cover clears the pending marker.
*/
func TestService_Store(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.service.Defer(ctx, 5, "https://covers.example/dune.jpg"))

	stored, err := f.service.Store(ctx, 5, pngImage(t, 200, 100))
	require.NoError(t, err)

	assert.Equal(t, "5/cover.png", stored.CoverImage)
	assert.Equal(t, "5/cover_tiny.jpg", stored.CoverImageTiny)
	assert.NotEmpty(t, stored.BlurHash)
	assert.Equal(t, *stored, f.repo.covers[5])
	assert.Empty(t, f.repo.pending)

	tiny, err := os.Open(filepath.Join(f.root, "5", "cover_tiny.jpg"))
	require.NoError(t, err)
	defer tiny.Close()
	decoded, err := jpeg.Decode(tiny)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, cover.TinySize, cover.TinySize/2), decoded.Bounds())
}

func TestService_StoreRejects(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Store(context.Background(), 5, []byte("plain text"))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnprocessable, apperr.As(err).Code)

	_, err = f.service.Store(context.Background(), 500, pngImage(t, 10, 10))
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_Defer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.service.Defer(ctx, 5, "not a url")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)

	assert.True(t, apperr.IsNotFound(f.service.Defer(ctx, 500, "https://covers.example/x.jpg")))
}

// # Pending

/*
TestService_ProcessPending walks the queue: an empty marker is cleared, a
broken URL stays pending behind the others, and a good URL is stored.
*/
func TestService_ProcessPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.pending[1] = ""
	f.repo.order = append(f.repo.order, 1)
	require.NoError(t, f.service.Defer(ctx, 2, f.remote.URL+"/missing.jpg"))
	require.NoError(t, f.service.Defer(ctx, 3, f.remote.URL+"/cover.png"))

	pass, err := f.service.ProcessPending(ctx)
	require.NoError(t, err)
	assert.True(t, pass.Processed)
	assert.Equal(t, 1, pass.BookID)

	pass, err = f.service.ProcessPending(ctx)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeBadGateway, apperr.As(err).Code)
	assert.False(t, pass.Processed)
	assert.Equal(t, []int{3, 2}, f.repo.order, "failed book moves to the back")

	pass, err = f.service.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, pass.BookID)
	assert.Equal(t, "3/cover.png", f.repo.covers[3].CoverImage)

	assert.Equal(t, map[int]string{2: f.remote.URL + "/missing.jpg"}, f.repo.pending)
}

func TestService_Drain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for bookID, path := range map[int]string{4: "/cover.png", 5: "/text", 6: "/cover.png"} {
		require.NoError(t, f.service.Defer(ctx, bookID, f.remote.URL+path))
	}
	sort.Ints(f.repo.order)

	handled, err := f.service.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, handled)
	assert.Contains(t, f.repo.covers, 4)
	assert.Contains(t, f.repo.covers, 6)
	assert.Equal(t, []int{5}, f.repo.order)

	handled, err = f.service.Drain(ctx)
	require.NoError(t, err)
	assert.Zero(t, handled)
}

// # Worker

type countingDrainer struct {
	ticks chan struct{}
	fail  bool
}

func (drainer *countingDrainer) Drain(context.Context) (int, error) {
	drainer.ticks <- struct{}{}
	if drainer.fail {
		return 0, errors.New("connection refused")
	}
	return 1, nil
}

func TestWorker_DrainsEachTick(t *testing.T) {
	for _, fail := range []bool{false, true} {
		drainer := &countingDrainer{ticks: make(chan struct{}, 16), fail: fail}
		worker := cover.NewWorker(drainer, 10*time.Millisecond, slog.New(slog.DiscardHandler))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- worker.Serve(ctx) }()

		for range 2 {
			select {
			case <-drainer.ticks:
			case <-time.After(2 * time.Second):
				t.Fatal("worker did not tick")
			}
		}
		cancel()

		assert.ErrorIs(t, <-done, context.Canceled)
		assert.Equal(t, "cover-worker", worker.String())
	}
}

// signallingDrainer reports each finished drain so a test can stop after one tick.
type signallingDrainer struct {
	inner   cover.Drainer
	drained chan int
}

func (drainer *signallingDrainer) Drain(ctx context.Context) (int, error) {
	handled, err := drainer.inner.Drain(ctx)
	drainer.drained <- handled
	return handled, err
}

/*
TestWorker_FailedDownloadDoesNotBlockBacklog puts a broken URL at the head of
the queue. One tick must still store the cover queued behind it.
*/
func TestWorker_FailedDownloadDoesNotBlockBacklog(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.service.Defer(context.Background(), 5, f.remote.URL+"/text"))
	require.NoError(t, f.service.Defer(context.Background(), 6, f.remote.URL+"/cover.png"))

	drainer := &signallingDrainer{inner: f.service, drained: make(chan int, 16)}
	worker := cover.NewWorker(drainer, 10*time.Millisecond, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Serve(ctx) }()

	var handled int
	select {
	case handled = <-drainer.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not tick")
	}
	cancel()
	<-done

	assert.Equal(t, 1, handled)
	assert.Contains(t, f.repo.covers, 6)
	assert.Equal(t, map[int]string{5: f.remote.URL + "/text"}, f.repo.pending)
}

// # HTTP

func TestHandler_UploadAndServe(t *testing.T) {
	f := newFixture(t)
	router := chi.NewRouter()
	cover.NewHandler(f.service).RegisterRoutes(router)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "dune.png")
	require.NoError(t, err)
	_, err = part.Write(pngImage(t, 40, 80))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/books/9/cover", bytes.NewReader(body.Bytes()))
	request.Header.Set("Content-Type", form.FormDataContentType())
	anonymous := httptest.NewRecorder()
	router.ServeHTTP(anonymous, request)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	request = httptest.NewRequest(http.MethodPost, "/books/9/cover", bytes.NewReader(body.Bytes()))
	request.Header.Set("Content-Type", form.FormDataContentType())
	claims := &sec.AuthClaims{Username: "owner", Role: string(sec.RoleOwner)}
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"cover_image":"9/cover.png"`)

	served := httptest.NewRecorder()
	router.ServeHTTP(served, httptest.NewRequest(http.MethodGet, "/covers/9/cover_tiny.jpg", nil))
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, "image/jpeg", served.Header().Get("Content-Type"))

	missing := httptest.NewRecorder()
	router.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/covers/9/book.epub", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)

	pass := httptest.NewRecorder()
	router.ServeHTTP(pass, httptest.NewRequest(http.MethodGet, "/downloader", nil))
	assert.Equal(t, http.StatusOK, pass.Code)
	assert.Contains(t, pass.Body.String(), `"processed":false`)
}

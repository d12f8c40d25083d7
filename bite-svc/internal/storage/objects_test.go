package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scroll-and-bite/bite-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectStore_UploadAndOpen(t *testing.T) {
	store := storage.NewObjectStore(t.TempDir(), "uploads", "http://localhost:8084/", "http://localhost:8084/fallback.png")

	objectPath, err := store.Upload(context.Background(), "products", strings.NewReader("png-bytes"), true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(objectPath, "products/"))
	assert.True(t, strings.HasSuffix(objectPath, ".png"))
	assert.Equal(t, "image/*", storage.ContentType(objectPath))

	reader, err := store.Open(objectPath)
	require.NoError(t, err)
	defer reader.Close()
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestObjectStore_UploadVideo(t *testing.T) {
	store := storage.NewObjectStore(t.TempDir(), "uploads", "http://localhost:8084", "")

	objectPath, err := store.Upload(context.Background(), "posts/7", strings.NewReader("mp4"), false)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(objectPath, ".mp4"))
	assert.Equal(t, "video/*", storage.ContentType(objectPath))
}

func TestObjectStore_RejectsTraversal(t *testing.T) {
	store := storage.NewObjectStore(t.TempDir(), "uploads", "http://localhost:8084", "")

	_, err := store.Upload(context.Background(), "../etc", strings.NewReader("x"), true)
	assert.ErrorIs(t, err, storage.ErrInvalid)

	_, err = store.Open("../../secret.png")
	assert.ErrorIs(t, err, storage.ErrInvalid)
}

func TestObjectStore_OpenMissing(t *testing.T) {
	store := storage.NewObjectStore(t.TempDir(), "uploads", "http://localhost:8084", "")

	_, err := store.Open("products/1.png")

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestObjectStore_PublicURL(t *testing.T) {
	store := storage.NewObjectStore(t.TempDir(), "uploads", "http://localhost:8084/", "http://localhost:8084/fallback.png")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "object path", path: "products/1.png", want: "http://localhost:8084/storage/v1/object/public/uploads/products/1.png"},
		{name: "empty path uses fallback", path: "", want: "http://localhost:8084/fallback.png"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, store.PublicURL(testCase.path))
		})
	}
}

func TestObjectStore_Handler(t *testing.T) {
	store := storage.NewObjectStore(t.TempDir(), "uploads", "http://localhost:8084", "")
	objectPath, err := store.Upload(context.Background(), "banners", strings.NewReader("banner"), true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, store.PathPrefix()+objectPath, nil)
	rec := httptest.NewRecorder()
	store.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "banner", rec.Body.String())
}

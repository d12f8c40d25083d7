package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const publicObjectPrefix = "/storage/v1/object/public/"

// ObjectStore keeps uploads on local disk under Root/Bucket and serves them
// through the public URL template.
type ObjectStore struct {
	Root        string
	Bucket      string
	BaseURL     string
	FallbackURL string
	now         func() time.Time
}

func NewObjectStore(root, bucket, baseURL, fallbackURL string) *ObjectStore {
	return &ObjectStore{
		Root:        root,
		Bucket:      bucket,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		FallbackURL: fallbackURL,
		now:         time.Now,
	}
}

// ObjectPath builds the timestamp based name used for new uploads.
func (s *ObjectStore) ObjectPath(folder string, isImage bool) string {
	ext := "mp4"
	if isImage {
		ext = "png"
	}
	return fmt.Sprintf("%s/%d.%s", folder, s.now().UnixMilli(), ext)
}

func ContentType(objectPath string) string {
	if strings.HasSuffix(objectPath, ".png") {
		return "image/*"
	}
	return "video/*"
}

// Upload writes content to a new object and returns its storage path.
// Existing objects are never overwritten.
func (s *ObjectStore) Upload(ctx context.Context, folder string, content io.Reader, isImage bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", classify("upload", s.Bucket, err)
	}
	if folder == "" || strings.Contains(folder, "..") {
		return "", kindError("upload", s.Bucket, ErrInvalid)
	}

	objectPath := s.ObjectPath(folder, isImage)
	fullPath, err := s.localPath(objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", classify("upload", s.Bucket, err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", kindError("upload", s.Bucket, ErrConflict)
		}
		return "", classify("upload", s.Bucket, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(fullPath)
		return "", classify("upload", s.Bucket, err)
	}
	return objectPath, nil
}

func (s *ObjectStore) Open(objectPath string) (io.ReadCloser, error) {
	fullPath, err := s.localPath(objectPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, kindError("download", s.Bucket, ErrNotFound)
		}
		return nil, classify("download", s.Bucket, err)
	}
	return file, nil
}

func (s *ObjectStore) Remove(objectPath string) error {
	fullPath, err := s.localPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return classify("remove", s.Bucket, err)
	}
	return nil
}

// PublicURL returns the fallback asset for an empty path.
func (s *ObjectStore) PublicURL(objectPath string) string {
	if objectPath == "" {
		return s.FallbackURL
	}
	return s.BaseURL + publicObjectPrefix + s.Bucket + "/" + objectPath
}

// Handler serves public objects under /storage/v1/object/public/{bucket}/.
func (s *ObjectStore) Handler() http.Handler {
	prefix := publicObjectPrefix + s.Bucket + "/"
	return http.StripPrefix(prefix, http.FileServer(http.Dir(filepath.Join(s.Root, s.Bucket))))
}

func (s *ObjectStore) PathPrefix() string {
	return publicObjectPrefix + s.Bucket + "/"
}

func (s *ObjectStore) localPath(objectPath string) (string, error) {
	cleaned := path.Clean("/" + objectPath)
	if cleaned == "/" || strings.Contains(objectPath, "..") {
		return "", kindError("resolve", s.Bucket, ErrInvalid)
	}
	return filepath.Join(s.Root, s.Bucket, filepath.FromSlash(cleaned)), nil
}

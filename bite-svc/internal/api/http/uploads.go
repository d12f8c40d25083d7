package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

var (
	imageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	videoTypes = map[string]bool{
		"video/mp4":       true,
		"video/quicktime": true,
		"video/webm":      true,
	}
)

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// decodePayload reads the JSON body, or the "data" field of a multipart
// form.
func decodePayload(r *http.Request, dst interface{}) error {
	if !isMultipart(r) {
		return decodeJSON(r, dst)
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return err
	}
	return json.Unmarshal([]byte(r.FormValue("data")), dst)
}

// formFile opens the named upload. It returns nil without error when the
// request carries no such file.
func formFile(r *http.Request, field string, allowed map[string]bool) (multipart.File, error) {
	if !isMultipart(r) {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving %s: %w", field, err)
	}
	if !allowed[header.Header.Get("Content-Type")] {
		file.Close()
		return nil, fmt.Errorf("invalid file type for %s", field)
	}
	return file, nil
}

// formFiles opens every upload under field, in form order.
func formFiles(r *http.Request, field string, allowed map[string]bool) ([]multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var files []multipart.File
	for _, header := range r.MultipartForm.File[field] {
		if !allowed[header.Header.Get("Content-Type")] {
			closeAll(files)
			return nil, fmt.Errorf("invalid file type for %s", field)
		}
		file, err := header.Open()
		if err != nil {
			closeAll(files)
			return nil, fmt.Errorf("error retrieving %s: %w", field, err)
		}
		files = append(files, file)
	}
	return files, nil
}

func closeAll(files []multipart.File) {
	for _, file := range files {
		file.Close()
	}
}

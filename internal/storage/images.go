package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyImage is returned for a zero-byte upload.
	ErrEmptyImage = errors.New("image file is empty")
	// ErrUnsupportedImageType is returned for a file extension outside the
	// allow-list.
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

var allowedExtensions = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
}

// ImageStore keeps one image file per listing on disk, named after the
// listing id plus the original file extension.
type ImageStore struct {
	dir string
}

// NewImageStore creates the storage directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save writes the image content to {listingID}.{ext}, overwriting any prior
// file with that name, and returns the stored path. The extension is taken
// from filename and must be on the allow-list.
func (s *ImageStore) Save(listingID uint, filename string, r io.Reader) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedImageType
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%d.%s", listingID, ext))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if written == 0 {
		os.Remove(path)
		return "", ErrEmptyImage
	}
	return path, nil
}

// Remove deletes a stored image file. Best-effort: a missing file is not an
// error.
func (s *ImageStore) Remove(path string) {
	if path == "" {
		return
	}
	os.Remove(path)
}

// Package storage keeps transaction receipt images on local disk under
// uuid-derived keys.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore saves and serves receipt images by opaque key.
type FileStore interface {
	Save(reader io.Reader, ext string) (string, error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}

type localFileStore struct {
	imagesDir string
}

// NewLocalFileStore creates the backing directory if needed.
func NewLocalFileStore(uploadDir string) (FileStore, error) {
	imagesDir := filepath.Join(uploadDir, "transaction_images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &localFileStore{imagesDir: imagesDir}, nil
}

// ErrUnsupportedExtension marks uploads that are not one of the accepted
// image formats. Callers translate it into a validation failure.
var ErrUnsupportedExtension = errors.New("unsupported image extension")

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func (s *localFileStore) Save(reader io.Reader, ext string) (string, error) {
	ext = strings.ToLower(ext)
	if !allowedExts[ext] {
		return "", fmt.Errorf("%w %q", ErrUnsupportedExtension, ext)
	}

	key := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(s.imagesDir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return key, nil
}

func (s *localFileStore) Open(key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.imagesDir, key))
}

func (s *localFileStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.imagesDir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// validateKey rejects anything that could escape the images directory.
func validateKey(key string) error {
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

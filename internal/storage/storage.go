// Package storage abstracts where uploaded CV files end up.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Storage persists an uploaded file under the given object name and returns
// the reference path that gets stored on the application record.
type Storage interface {
	Save(objectName string, fileData io.Reader) (string, error)
}

// UniqueName generates a collision-free object name preserving the original
// file extension.
func UniqueName(fieldName, originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s-%d-%s%s", fieldName, time.Now().UnixNano(), uuid.NewString()[:8], ext)
}

// DiskStorage writes uploads to a local directory served statically under
// baseURL.
type DiskStorage struct {
	Dir     string
	BaseURL string
}

// NewDiskStorage ensures the upload directory exists and returns a
// DiskStorage rooted there.
func NewDiskStorage(dir, baseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStorage{Dir: dir, BaseURL: baseURL}, nil
}

// Save streams fileData into the upload directory and returns the public
// relative path.
func (d *DiskStorage) Save(objectName string, fileData io.Reader) (string, error) {
	dst, err := os.Create(filepath.Join(d.Dir, objectName))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return d.BaseURL + "/" + objectName, nil
}

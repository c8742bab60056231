package storage

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cityfix/cityfix-api/models"
)

// LocalStorage writes uploads into a directory served under /uploads
type LocalStorage struct {
	dir string
	now func() time.Time
}

// NewLocalStorage creates the upload directory if it is missing
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, now: time.Now}, nil
}

// Dir is the directory files are written to
func (l *LocalStorage) Dir() string {
	return l.dir
}

// SaveFile writes the blob under a collision-resistant name and returns the
// storage-relative reference "uploads/<name>"
func (l *LocalStorage) SaveFile(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	filename := l.generateFilename(originalName)

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	if err := os.WriteFile(filepath.Join(l.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	zap.S().Debugw("stored upload locally", "file", filename, "mimeType", mimeType, "bytes", len(data))
	return path.Join(UploadsPath, filename), nil
}

// IsFileTypeAllowed implements Storage
func (l *LocalStorage) IsFileTypeAllowed(mimeType string) bool {
	return IsFileTypeAllowed(mimeType)
}

func (l *LocalStorage) generateFilename(originalName string) string {
	return fmt.Sprintf("%d-%d%s", l.now().UnixMilli(), rand.Int63n(1e9), filepath.Ext(filepath.Base(originalName)))
}

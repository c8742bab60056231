// Package storage persists uploaded report media and turns stored references
// back into client-usable URLs.
package storage

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/cityfix/cityfix-api/config"
)

// UploadsPath is the URL prefix local files are served under
const UploadsPath = "uploads"

// Storage saves a media blob and returns the reference to keep on the report.
// Size and type policies are enforced by the caller before SaveFile.
type Storage interface {
	SaveFile(ctx context.Context, data []byte, originalName, mimeType string) (string, error)
	IsFileTypeAllowed(mimeType string) bool
}

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"video/mp4":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
}

// IsFileTypeAllowed reports whether the mime type, parameters ignored, is on
// the allow-list shared by every backend
func IsFileTypeAllowed(mimeType string) bool {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return false
	}
	return allowedMimeTypes[strings.ToLower(mediaType)]
}

// New builds the backend selected by STORAGE_TYPE
func New(conf *config.Config) (Storage, error) {
	switch conf.StorageType {
	case config.StorageLocal, "":
		return NewLocalStorage(conf.UploadDir)
	case config.StorageCloudinary:
		return NewCloudinaryStorage(conf.CloudinaryURL, conf.CloudinaryFolder)
	default:
		return nil, fmt.Errorf("unknown storage type %q", conf.StorageType)
	}
}

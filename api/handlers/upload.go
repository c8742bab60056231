package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cityfix/cityfix-api/config"
	"github.com/cityfix/cityfix-api/models"
	"github.com/cityfix/cityfix-api/storage"
)

// multipartOverhead is the slack allowed on top of the file size for the
// multipart envelope
const multipartOverhead = 64 << 10

// Upload exported for testing purposes
type Upload struct {
	Storage     storage.Storage
	Resolver    *storage.Resolver
	MaxFileSize int64
}

// UploadFileHandler stores one media file from the multipart field "file" and
// returns its URL along with the reference to save on a report
func (u Upload) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := actor(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, u.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(u.MaxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError("file too large", w, fmt.Errorf("%w: limit is %d bytes", models.ErrPayloadTooLarge, u.MaxFileSize))
			return
		}
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError("file is required", w, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}
	defer file.Close()

	if header.Size > u.MaxFileSize {
		writeError("file too large", w, fmt.Errorf("%w: limit is %d bytes", models.ErrPayloadTooLarge, u.MaxFileSize))
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if !u.Storage.IsFileTypeAllowed(mimeType) {
		writeError("file type not allowed", w, fmt.Errorf("%w: %q", models.ErrUnsupportedMediaType, mimeType))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, u.MaxFileSize+1))
	if err != nil {
		config.ErrorStatus("failed to read file", http.StatusBadRequest, w, err)
		return
	}
	if int64(len(data)) > u.MaxFileSize {
		writeError("file too large", w, fmt.Errorf("%w: limit is %d bytes", models.ErrPayloadTooLarge, u.MaxFileSize))
		return
	}

	ref, err := u.Storage.SaveFile(r.Context(), data, uploadName(header.Filename, mimeType), mimeType)
	if err != nil {
		writeError("failed to store file", w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.UploadResponse{
		FileURL:   u.Resolver.Resolve(ref),
		Reference: ref,
	})
}

// uploadName keeps the client's base name, or derives one from the media kind
func uploadName(filename, mimeType string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base != "" && base != "." && base != "/" {
		return base
	}
	if strings.HasPrefix(strings.ToLower(mimeType), "video/") {
		return "file.mp4"
	}
	return "file.jpg"
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityfix/cityfix-api/config"
	"github.com/cityfix/cityfix-api/models"
	"github.com/cityfix/cityfix-api/storage"
)

type fakeStorage struct {
	saved    []byte
	name     string
	mimeType string
	ref      string
	err      error
}

func (f *fakeStorage) SaveFile(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	f.saved, f.name, f.mimeType = data, originalName, mimeType
	return f.ref, f.err
}

func (f *fakeStorage) IsFileTypeAllowed(mimeType string) bool {
	return storage.IsFileTypeAllowed(mimeType)
}

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/reports/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return authed(req, citizen)
}

func newUpload(store storage.Storage, max int64) Upload {
	return Upload{
		Storage:     store,
		Resolver:    storage.NewResolver(config.StorageLocal, "http://localhost:3000"),
		MaxFileSize: max,
	}
}

func TestUpload_UploadFileHandler(t *testing.T) {
	store := &fakeStorage{ref: "uploads/1700000000000-42.jpg"}
	rr := httptest.NewRecorder()
	http.HandlerFunc(newUpload(store, 1024).UploadFileHandler).ServeHTTP(rr, multipartRequest(t, "file", "pothole.jpg", "image/jpeg", []byte("jpeg-bytes")))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var res models.UploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "http://localhost:3000/uploads/1700000000000-42.jpg", res.FileURL)
	assert.Equal(t, "uploads/1700000000000-42.jpg", res.Reference)
	assert.Equal(t, []byte("jpeg-bytes"), store.saved)
	assert.Equal(t, "pothole.jpg", store.name)
	assert.Equal(t, "image/jpeg", store.mimeType)
}

func TestUpload_UploadFileHandlerMissingFile(t *testing.T) {
	store := &fakeStorage{}
	rr := httptest.NewRecorder()
	http.HandlerFunc(newUpload(store, 1024).UploadFileHandler).ServeHTTP(rr, multipartRequest(t, "other", "a.jpg", "image/jpeg", []byte("x")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, store.saved)
}

func TestUpload_UploadFileHandlerNotMultipart(t *testing.T) {
	req := authed(httptest.NewRequest("POST", "/api/v1/reports/upload", bytes.NewBufferString(`{}`)), citizen)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	http.HandlerFunc(newUpload(&fakeStorage{}, 1024).UploadFileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpload_UploadFileHandlerUnsupportedType(t *testing.T) {
	store := &fakeStorage{}
	rr := httptest.NewRecorder()
	http.HandlerFunc(newUpload(store, 1024).UploadFileHandler).ServeHTTP(rr, multipartRequest(t, "file", "doc.pdf", "application/pdf", []byte("pdf")))

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	assert.Nil(t, store.saved)
}

func TestUpload_UploadFileHandlerTooLarge(t *testing.T) {
	store := &fakeStorage{}
	rr := httptest.NewRecorder()
	http.HandlerFunc(newUpload(store, 8).UploadFileHandler).ServeHTTP(rr, multipartRequest(t, "file", "big.png", "image/png", bytes.Repeat([]byte("a"), 64)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Nil(t, store.saved)
}

func TestUpload_UploadFileHandlerExactLimit(t *testing.T) {
	store := &fakeStorage{ref: "uploads/x.png"}
	rr := httptest.NewRecorder()
	http.HandlerFunc(newUpload(store, 8).UploadFileHandler).ServeHTTP(rr, multipartRequest(t, "file", "ok.png", "image/png", bytes.Repeat([]byte("a"), 8)))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Len(t, store.saved, 8)
}

func TestUpload_UploadFileHandlerStorageFailure(t *testing.T) {
	store := &fakeStorage{err: fmt.Errorf("%w: disk full", models.ErrStorageFailure)}
	rr := httptest.NewRecorder()
	http.HandlerFunc(newUpload(store, 1024).UploadFileHandler).ServeHTTP(rr, multipartRequest(t, "file", "clip.mp4", "video/mp4", []byte("mp4")))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, "failed to store file", decodeError(t, rr).Message)
}

func TestUploadName(t *testing.T) {
	assert.Equal(t, "photo.jpg", uploadName("photo.jpg", "image/jpeg"))
	assert.Equal(t, "photo.jpg", uploadName(`C:\Users\me\photo.jpg`, "image/jpeg"))
	assert.Equal(t, "photo.jpg", uploadName("../../photo.jpg", "image/jpeg"))
	assert.Equal(t, "file.mp4", uploadName("", "video/mp4"))
	assert.Equal(t, "file.jpg", uploadName("", "image/png"))
}

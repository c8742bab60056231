package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityfix/cityfix-api/config"
)

func TestIsFileTypeAllowed(t *testing.T) {
	for _, mt := range []string{"image/jpeg", "image/jpg", "image/png", "video/mp4", "video/quicktime", "video/x-msvideo", "IMAGE/PNG", "image/jpeg; charset=binary"} {
		assert.True(t, IsFileTypeAllowed(mt), mt)
	}
	for _, mt := range []string{"", "image/gif", "application/pdf", "text/html", "not a mime"} {
		assert.False(t, IsFileTypeAllowed(mt), mt)
	}
}

func TestNewLocal(t *testing.T) {
	dir := t.TempDir() + "/nested/uploads"
	s, err := New(&config.Config{StorageType: config.StorageLocal, UploadDir: dir})
	require.NoError(t, err)

	local, ok := s.(*LocalStorage)
	require.True(t, ok)
	assert.DirExists(t, local.Dir())
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(&config.Config{StorageType: "ftp"})
	assert.Error(t, err)
}

func TestNewCloudinaryRequiresURL(t *testing.T) {
	_, err := New(&config.Config{StorageType: config.StorageCloudinary})
	assert.Error(t, err)
}

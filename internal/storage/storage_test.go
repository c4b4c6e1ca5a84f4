package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Upload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir, "http://localhost:8083/")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), strings.NewReader("png-bytes"), "../../etc/Cover.html", "image/png")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "http://localhost:8083/uploads/"), url)
	name := strings.TrimPrefix(url, "http://localhost:8083/uploads/")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotContains(t, name, "Cover")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStorage_UploadExtensionFromContentType(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), strings.NewReader("jpeg"), "photo.png", "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)
}

func TestLocalStorage_UploadRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://x")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("<script>"), "evil.html", "text/html")

	assert.ErrorIs(t, err, ErrUnsupportedType)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_UploadCanceled(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Upload(ctx, strings.NewReader("x"), "a.png", "image/png")

	assert.ErrorIs(t, err, context.Canceled)
}

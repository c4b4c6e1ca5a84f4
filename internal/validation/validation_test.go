package validation

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-backend/internal/models"
)

func TestStruct_SaveRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.SaveArticleRequest
		field   string
		message string
	}{
		{"missing title", models.SaveArticleRequest{}, "title", "title is required"},
		{"long title", models.SaveArticleRequest{Title: strings.Repeat("x", 201)}, "title", "title must be at most 200 characters"},
		{"bad kind", models.SaveArticleRequest{Title: "t", Kind: "poll"}, "kind", "kind must be one of: article, review"},
		{"bad status", models.SaveArticleRequest{Title: "t", Status: "live"}, "status", "status must be one of: draft, published"},
		{
			"gallery image without url",
			models.SaveArticleRequest{Title: "t", Media: models.MediaContent{Gallery: []models.MediaImage{{Caption: "c"}}}},
			"media.gallery[0].url",
			"media.gallery[0].url is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Error())
		})
	}
}

func TestStruct_Valid(t *testing.T) {
	req := models.SaveArticleRequest{Title: "Elden Ring review", Kind: models.KindReview, Status: models.StatusPublished}

	assert.NoError(t, Struct(req))
}

func header(name, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{Filename: name, Header: h, Size: size}
}

func TestValidateImageUpload(t *testing.T) {
	assert.NoError(t, ValidateImageUpload(header("a.png", "image/png", 100)))
	assert.NoError(t, ValidateImageUpload(header("a.JPG", "", 100)))
	assert.ErrorIs(t, ValidateImageUpload(header("a.png", "image/png", 0)), ErrEmptyFile)
	assert.ErrorIs(t, ValidateImageUpload(header("a.png", "image/png", MaxImageSize+1)), ErrFileTooLarge)
	assert.ErrorIs(t, ValidateImageUpload(header(strings.Repeat("a", 256)+".png", "image/png", 1)), ErrFilenameTooLong)
	assert.ErrorIs(t, ValidateImageUpload(header("a.mp4", "video/mp4", 1)), ErrInvalidFileType)
	assert.ErrorIs(t, ValidateImageUpload(header("noext", "", 1)), ErrInvalidFileType)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestDetectImageType(t *testing.T) {
	t.Run("Should accept content matching the declared type", func(t *testing.T) {
		r := bytes.NewReader(pngHeader)

		got, err := DetectImageType(r, "image/png")

		require.NoError(t, err)
		assert.Equal(t, "image/png", got)
		rest, _ := io.ReadAll(r)
		assert.Equal(t, pngHeader, rest, "reader is rewound")
	})

	t.Run("Should reject markup declared as an image", func(t *testing.T) {
		_, err := DetectImageType(strings.NewReader("<html><script>alert(1)</script></html>"), "image/png")

		assert.ErrorIs(t, err, ErrInvalidFileType)
	})

	t.Run("Should reject an image declared as another image type", func(t *testing.T) {
		_, err := DetectImageType(bytes.NewReader(pngHeader), "image/jpeg")

		assert.ErrorIs(t, err, ErrContentMismatch)
	})

	t.Run("Should reject empty content", func(t *testing.T) {
		_, err := DetectImageType(bytes.NewReader(nil), "image/png")

		assert.ErrorIs(t, err, ErrInvalidFileType)
	})
}

package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

const (
	MaxImageSize = 10 * 1024 * 1024 // 10MB
)

var (
	ErrFileTooLarge    = errors.New("file too large - maximum 10MB allowed")
	ErrInvalidFileType = errors.New("invalid file type - only jpeg, png, webp, gif, avif allowed")
	ErrFilenameTooLong = errors.New("filename too long - maximum 255 characters")
	ErrEmptyFile       = errors.New("file is empty")
	ErrContentMismatch = errors.New("file content does not match its declared type")
)

var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/avif": true,
}

// ValidationError is a user-facing failure of the save pipeline.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names so messages read "title is required".
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates v's `validate` tags and returns the first failure as a
// *ValidationError.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &ValidationError{Field: fieldPath(fe), Message: message(fe)}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func ValidateImageUpload(fileHeader *multipart.FileHeader) error {

	if fileHeader.Size == 0 {
		return ErrEmptyFile
	}

	if fileHeader.Size > MaxImageSize {
		return ErrFileTooLarge
	}

	if len(fileHeader.Filename) > 255 {
		return ErrFilenameTooLong
	}

	if !AllowedImageTypes[ContentType(fileHeader)] {
		return ErrInvalidFileType
	}

	return nil
}

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 512

// DetectImageType checks the upload's bytes rather than what the client declared. The
// detected type must be an allowed image type matching declared. The reader is rewound
// so the caller can store the whole file.
func DetectImageType(file io.ReadSeeker, declared string) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	detected := detectMIME(head[:n])
	if !AllowedImageTypes[detected] {
		return "", ErrInvalidFileType
	}
	if detected != declared {
		return "", ErrContentMismatch
	}
	return detected, nil
}

// detectMIME uses stdlib sniffing first and falls back to mimetype for formats it
// does not know (avif).
func detectMIME(head []byte) string {
	if len(head) == 0 {
		return "application/octet-stream"
	}
	mt := http.DetectContentType(head)
	if mt == "application/octet-stream" {
		mt = mimetype.Detect(head).String()
	}
	mt, _, _ = strings.Cut(mt, ";")
	return strings.TrimSpace(mt)
}

// ContentType returns the declared content type of an upload, guessing from the file
// extension when the client sent none.
func ContentType(fileHeader *multipart.FileHeader) string {
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = guessContentType(fileHeader.Filename)
	}
	return contentType
}

func guessContentType(filename string) string {

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "application/octet-stream"
	}

	typeMap := map[string]string{
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"webp": "image/webp",
		"gif":  "image/gif",
		"avif": "image/avif",
	}

	if ct, ok := typeMap[ext]; ok {
		return ct
	}

	return "application/octet-stream"
}

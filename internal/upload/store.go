package upload

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mybabyhq/site-server-go/internal/config"
	apperrors "github.com/mybabyhq/site-server-go/internal/errors"
)

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/uploads"

// Purpose selects the naming policy for a stored logo.
type Purpose int

const (
	// PurposeBrand stores under a fixed filename stem, overwriting the
	// previous primary logo in place. No versioning; if the extension
	// changes the old file is left behind.
	PurposeBrand Purpose = iota
	// PurposeClientLogo and PurposeOnboarding embed a creation timestamp
	// so concurrent uploads never collide.
	PurposeClientLogo
	PurposeOnboarding
)

const brandFileStem = "mybaby-logo"

var allowedMIMETypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/svg+xml": true,
}

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
}

// Store validates multipart logo uploads and writes them under a single
// uploads directory.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if absent.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save validates and stores one uploaded file, returning its public URL
// path. Validation order: presence, type allow-list, size ceiling.
func (s *Store) Save(fh *multipart.FileHeader, purpose Purpose) (string, error) {
	if fh == nil {
		return "", apperrors.NoFile()
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !typeAllowed(fh, ext) {
		return "", apperrors.InvalidFileType()
	}

	if fh.Size > config.MaxLogoFileSize {
		return "", apperrors.FileSizeExceeded()
	}

	name := filenameFor(purpose, ext)

	src, err := fh.Open()
	if err != nil {
		return "", apperrors.Internal("Failed to read uploaded file").WithCause(err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", apperrors.Internal("Failed to store uploaded file").WithCause(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperrors.Internal("Failed to store uploaded file").WithCause(err)
	}

	return PublicPrefix + "/" + name, nil
}

// typeAllowed accepts files whose declared MIME type is on the allow-list,
// falling back to the filename extension when no usable Content-Type was
// sent with the part.
func typeAllowed(fh *multipart.FileHeader, ext string) bool {
	contentType := fh.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && mediaType != "application/octet-stream" {
			return allowedMIMETypes[mediaType]
		}
	}
	return allowedExtensions[ext]
}

func filenameFor(purpose Purpose, ext string) string {
	switch purpose {
	case PurposeBrand:
		return brandFileStem + ext
	case PurposeClientLogo:
		return fmt.Sprintf("client-logo-%d%s", time.Now().UnixMilli(), ext)
	default:
		return fmt.Sprintf("kindergarten-logo-%d%s", time.Now().UnixMilli(), ext)
	}
}

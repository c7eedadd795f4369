package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	apperrors "github.com/mybabyhq/site-server-go/internal/errors"
)

// formFile extracts the single uploaded file from a multipart request,
// translating parse failures into the upload error taxonomy. A nil header
// with nil error means the field was simply absent.
func formFile(r *http.Request, field string) (*multipart.FileHeader, error) {
	file, fh, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			return nil, apperrors.FileSizeExceeded()
		}
		return nil, apperrors.ValidationError("Invalid multipart request").WithCause(err)
	}
	file.Close()
	return fh, nil
}

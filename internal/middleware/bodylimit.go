package middleware

import (
	"net/http"

	"github.com/mybabyhq/site-server-go/internal/config"
	apperrors "github.com/mybabyhq/site-server-go/internal/errors"
)

type BodyLimitMiddleware struct {
	maxSize      int64
	sizeExceeded bool
}

func NewBodyLimitMiddleware(maxSize int64) *BodyLimitMiddleware {
	if maxSize <= 0 {
		maxSize = config.MaxJSONBodySize
	}
	return &BodyLimitMiddleware{maxSize: maxSize}
}

// NewUploadBodyLimitMiddleware rejects oversized requests with the upload
// error taxonomy, so a size failure looks the same to clients whether it is
// caught at the body limit or at the file-size check.
func NewUploadBodyLimitMiddleware(maxSize int64) *BodyLimitMiddleware {
	m := NewBodyLimitMiddleware(maxSize)
	m.sizeExceeded = true
	return m
}

func (m *BodyLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && r.ContentLength > m.maxSize {
			if m.sizeExceeded {
				writeError(w, apperrors.FileSizeExceeded())
			} else {
				writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
					"error": "Request body too large",
				})
			}
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, m.maxSize)
		next.ServeHTTP(w, r)
	})
}

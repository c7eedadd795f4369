package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// UploadsHandler serves stored upload files. It refuses path escapes and
// directory listings; anything that is not a regular file is a 404.
type UploadsHandler struct {
	dir string
}

func NewUploadsHandler(dir string) *UploadsHandler {
	return &UploadsHandler{dir: dir}
}

func (h *UploadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	// Rooted Clean resolves any ".." segments before the join.
	cleaned := path.Clean("/" + name)
	filePath := filepath.Join(h.dir, filepath.FromSlash(cleaned))
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

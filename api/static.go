package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the frontend bundle. Paths that do not match a file
// on disk fall back to index.html so client-side routes resolve.
type StaticHandler struct {
	dir    string
	assets http.Handler
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{
		dir:    dir,
		assets: http.FileServer(http.Dir(dir)),
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(h.dir, filepath.Clean("/"+strings.TrimPrefix(r.URL.Path, "/")))

	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
		return
	}

	h.assets.ServeHTTP(w, r)
}

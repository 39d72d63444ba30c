package handler

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves front-end assets for any path the API routes don't
// claim. Paths resolving outside the root are rejected.
type StaticHandler struct {
	root string
}

func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{root: root}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/")
	if rel == "" {
		rel = "index.html"
	}

	rootAbs, err := filepath.Abs(h.root)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	full := filepath.Join(rootAbs, filepath.FromSlash(rel))
	if full != rootAbs && !strings.HasPrefix(full, rootAbs+string(filepath.Separator)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(full))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentTypeFor(path string) string {
	switch ext := filepath.Ext(path); ext {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}

package dev

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// assetPath returns the cleaned path of an asset request relative to the
// project directory. Traversal, absolute paths and hidden files are
// rejected.
func assetPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" || strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") {
		return "", false
	}
	// "//etc/passwd" still starts with a slash here.
	if strings.HasPrefix(rel, "/") {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." || strings.HasPrefix(seg, ".") {
			return "", false
		}
	}

	clean := path.Clean(rel)
	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}
	return clean, true
}

// assetHandler serves files below dir. Responses are never cached, so a
// reload always sees the edited file.
func assetHandler(dir string) http.HandlerFunc {
	fsys := os.DirFS(dir)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		rel, ok := assetPath(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		f, err := fsys.Open(rel)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		rs, ok := f.(io.ReadSeeker)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		http.ServeContent(w, r, rel, info.ModTime(), rs)
	}
}

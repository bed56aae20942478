package http

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// newStaticHandler serves files from dir, falling back to index.html for
// paths that do not name a file. It returns nil when dir is empty or is not
// a directory.
func newStaticHandler(dir string) http.Handler {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	root := os.DirFS(dir)
	files := http.FileServerFS(root)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = "."
		}
		if _, err := fs.Stat(root, name); errors.Is(err, fs.ErrNotExist) {
			http.ServeFileFS(w, r, root, "index.html")
			return
		}
		files.ServeHTTP(w, r)
	})
}

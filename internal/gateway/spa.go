package gateway

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/playperu/quizmaster/internal/httpserver"
)

// handleSPA serves static files from dir. Unknown paths fall back to
// index.html so the front-end router can resolve them, except under
// /api/ where a JSON 404 is returned.
func handleSPA(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			httpserver.WriteError(w, http.StatusNotFound, "not found")
			return
		}

		path := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, index)
	}
}

//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// IsDev reports whether assets are served from disk.
const IsDev = true

// Dir derives the absolute path to the static directory
// relative to this source file, regardless of where the binary is run from.
func Dir() string {
	// runtime.Caller(0) returns the path to this specific file (static_dev.go)
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// Handler returns an HTTP handler for serving static files.
// In dev mode, files are served directly from the filesystem for hot reloading.
func Handler() http.Handler {
	staticDir := Dir()
	slog.Info("static assets served from filesystem", "path", staticDir)

	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(os.DirFS(staticDir))))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}

//go:build !dev

package resources

import (
	"embed"
	"io/fs"
	"net/http"
)

// IsDev reports whether assets are served from disk.
const IsDev = false

//go:embed static/*
var staticFS embed.FS

// Dir returns the on-disk static directory relative to the project root.
// Embedded builds only read it when asset watching is turned on.
func Dir() string {
	return StaticDirectoryPath
}

// Handler returns an HTTP handler for serving static files.
// In production mode, files are embedded in the binary.
func Handler() http.Handler {
	fsys, _ := fs.Sub(staticFS, "static")
	fileServer := http.FileServer(http.FS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Cache embedded static assets for 1 year (they never change in prod)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.StripPrefix("/static/", fileServer).ServeHTTP(w, r)
	})
}

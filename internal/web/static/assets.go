// Package static provides the embedded resume site frontend.
package static

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed index.html style.css app.js favicon.svg
var assetsFS embed.FS

// Handler returns an http.Handler that serves the embedded site.
// http.FileServer serves index.html for the root path. Browsers that ask for
// /favicon.ico get the SVG icon.
func Handler() http.Handler {
	sub, err := fs.Sub(assetsFS, ".")
	if err != nil {
		// Cannot happen with embed.FS and ".", but fail fast if the
		// embedded filesystem is somehow corrupted.
		panic(fmt.Sprintf("static: failed to create sub-filesystem: %v", err))
	}
	files := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/favicon.ico" {
			icon, err := assetsFS.ReadFile("favicon.svg")
			if err != nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "image/svg+xml")
			_, _ = w.Write(icon)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// Package web embeds the single-page client served alongside the API.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// Handler serves the embedded client assets.
func Handler() http.Handler {
	content, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// Unreachable: the subtree is embedded at compile time.
		panic(err)
	}
	return http.FileServer(http.FS(content))
}

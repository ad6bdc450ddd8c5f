// Package web serves the single-page front-end and its static assets.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"sentiment-analyzer/internal/handler/http/respond"
)

//go:embed templates/index.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	Version string
}

// IndexHandler renders the index page.
type IndexHandler struct {
	Version string
	Logger  *slog.Logger
}

func (h IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexData{Version: h.Version}); err != nil {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("failed to render index page", slog.Any("error", err))
		respond.Text(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respond.HTML(w, http.StatusOK, buf.String())
}

// StaticHandler serves the embedded assets under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

// Register mounts the index page on exactly "/" and the assets under /static/.
func Register(mux *http.ServeMux, version string, logger *slog.Logger) {
	mux.Handle("GET /{$}", IndexHandler{Version: version, Logger: logger})
	mux.Handle("GET /static/", StaticHandler())
}

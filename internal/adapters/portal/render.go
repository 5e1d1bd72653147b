package portal

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"edit", "signin", "overview"}

type pages map[string]*template.Template

// parsePages builds one template set per page, each sharing the layout.
func parsePages() (pages, error) {
	out := make(pages, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (p pages) render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := p[name]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("page", name).Msg("render failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("page", name).Msg("write page failed")
	}
}

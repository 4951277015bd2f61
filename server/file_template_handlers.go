package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/jrsteele09/wave-console/estimates"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

// pages are rendered inside base.html, each defining "title" and "content".
var pages = []string{
	"index.html",
	"loading.html",
	"login.html",
	"register.html",
	"dashboard.html",
	"estimates.html",
	"estimate_form.html",
}

var templateFuncs = template.FuncMap{
	"money": estimates.FormatAmount,
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a page together with the shared layout.
func ParseTemplate(name string) (*template.Template, error) {
	return template.New("base.html").Funcs(templateFuncs).ParseFS(TemplateFilesFS(), "base.html", name)
}

func parsePages() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = tmpl
	}
	return out, nil
}

// render buffers the page; a template error produces a plain 500.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := s.templates[name]
	if !ok {
		log.Error().Str("template", name).Msg("Unknown template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		log.Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

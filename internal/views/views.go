// Package views holds the HTML templates of the catalog.
package views

import (
	"embed"
	"html/template"
	"path/filepath"
	"strings"
)

//go:embed templates/*.html
var embedded embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"inc": func(i int) int {
		return i + 1
	},
	"join": strings.Join,
	"selected": func(a, b string) bool {
		return a == b
	},
}

// Load parses the templates from dir, or the embedded set when dir is empty.
func Load(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(Funcs)
	if dir == "" {
		return tmpl.ParseFS(embedded, "templates/*.html")
	}
	return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
}

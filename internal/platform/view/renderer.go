package view

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// Renderer implements echo.Renderer on top of html/template. All templates
// are parsed once at startup; views are addressed by file name without the
// .html suffix (e.g. "register-patient").
type Renderer struct {
	templates *template.Template
}

// New parses every .html file in dir.
func New(dir string) (*Renderer, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates in %s: %w", dir, err)
	}
	return &Renderer{templates: t}, nil
}

// NewFromTemplates wraps an already-parsed template set. Used by tests.
func NewFromTemplates(t *template.Template) *Renderer {
	return &Renderer{templates: t}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name+".html", data)
}

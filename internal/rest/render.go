package rest

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout"

// TemplateRenderer renders page views inside the shared layout. Every view
// defines its own "content" block, so each one gets a separate template set.
type TemplateRenderer struct {
	views map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	names := []string{viewIndex, viewNews, viewArticle, viewSearch, viewLogin, viewAdmin}

	r := &TemplateRenderer{views: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		t, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.views[name] = t
	}

	return r, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.views[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	return t.ExecuteTemplate(w, layoutTemplate, data)
}

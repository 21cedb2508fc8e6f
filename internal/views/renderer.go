// Package views renders the site's HTML pages from embedded templates
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
)

// Data is the context passed to a view
type Data map[string]any

// Renderer defines the interface for view rendering
type Renderer interface {
	// Render executes the named view with the given data
	//
	// "name" parameter is the view name, the template file name without extension (e.g. "media").
	// "data" parameter is the view context.
	//
	// If the view is unknown or execution fails, nothing is written to "w" and the error is returned.
	Render(w io.Writer, name string, data Data) error
}

//go:embed templates/*.html
var templateFiles embed.FS

const layoutFile = "templates/layout.html"

// TemplateRenderer renders views with html/template, each page wrapped in the shared layout
type TemplateRenderer struct {
	views map[string]*template.Template
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
	},
	"isoDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"isoDateTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02T15:04")
	},
	"clock": func(t time.Time) string {
		return t.Format("15h04")
	},
	"day": func(t time.Time) int {
		return t.Day()
	},
	"monthShort": func(t time.Time) string {
		return strings.ToUpper(string([]rune(frenchMonths[t.Month()-1])[:3]))
	},
	"monthYear": func(t time.Time) string {
		return fmt.Sprintf("%s %d", frenchMonths[t.Month()-1], t.Year())
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"pages": func(total int) []int {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	},
}

// NewTemplateRenderer parses the layout and every page template
func NewTemplateRenderer() (*TemplateRenderer, error) {
	layout, err := template.New("layout").Funcs(funcs).ParseFS(templateFiles, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages, err := fs.Glob(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	views := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == layoutFile {
			continue
		}

		view, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout: %w", err)
		}
		if _, err := view.ParseFS(templateFiles, page); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}

		views[strings.TrimSuffix(path.Base(page), ".html")] = view
	}

	return &TemplateRenderer{views: views}, nil
}

// Render executes the named view into w, buffering so a failed execution writes nothing
func (tr *TemplateRenderer) Render(w io.Writer, name string, data Data) error {
	view, ok := tr.views[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}

	var buf bytes.Buffer
	if err := view.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render view %q: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a view with the given name exists
func (tr *TemplateRenderer) Has(name string) bool {
	_, ok := tr.views[name]
	return ok
}

package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/pkg/errors"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Engine renders a named template with data. The names used by views are
// "breadcrumbs", "sidepanel", "symbol_content" and "symbol_group".
type Engine interface {
	Render(name string, data any) (string, error)
}

// TemplateEngine is an [Engine] backed by the embedded html/template set.
type TemplateEngine struct {
	templates *template.Template
}

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"join":  strings.Join,
}

// NewTemplateEngine parses the embedded templates and their partials.
func NewTemplateEngine() (*TemplateEngine, error) {
	t, err := template.New("dtsdoc").
		Funcs(templateFuncs).
		Option("missingkey=error").
		ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	return &TemplateEngine{templates: t}, nil
}

func (e *TemplateEngine) Render(name string, data any) (string, error) {
	if e.templates.Lookup(name) == nil {
		return "", errors.Errorf("template %q is not defined", name)
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute template %q", name)
	}
	return buf.String(), nil
}

// Package render turns a template id and a variable bag into an HTML email body.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// ErrUnknownTemplate is returned for a template id with no embedded definition.
var ErrUnknownTemplate = errors.New("unknown template")

// Renderer holds the parsed email templates. It is safe for concurrent use.
type Renderer struct {
	tpl *template.Template
}

// New parses every embedded template. Each file defines one named template
// plus the shared layout blocks.
func New() (*Renderer, error) {
	t, err := template.New("email").Option("missingkey=zero").ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Renderer{tpl: t}, nil
}

// Render executes the template named name against data.
func (r *Renderer) Render(name string, data map[string]any) (string, error) {
	if r.tpl.Lookup(name) == nil {
		return "", fmt.Errorf("template %q: %w", name, ErrUnknownTemplate)
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

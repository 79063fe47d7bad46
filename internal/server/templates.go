package server

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sync"
	"time"
)

// TemplateRenderer manages the dashboard HTML templates.
type TemplateRenderer struct {
	templates   *template.Template
	mu          sync.RWMutex
	templateDir string
}

// NewTemplateRenderer parses all templates from templateDir.
func NewTemplateRenderer(templateDir string) (*TemplateRenderer, error) {
	if templateDir == "" {
		templateDir = "web/templates"
	}

	tr := &TemplateRenderer{templateDir: templateDir}
	if err := tr.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return tr, nil
}

func (tr *TemplateRenderer) loadTemplates() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	funcMap := template.FuncMap{
		"formatDate":      formatDate,
		"formatDateShort": formatDateShort,
		"truncate":        truncateString,
	}

	pattern := filepath.Join(tr.templateDir, "*.html")
	templates, err := template.New("").Funcs(funcMap).ParseGlob(pattern)
	if err != nil {
		return fmt.Errorf("failed to parse templates from %s: %w", pattern, err)
	}
	tr.templates = templates
	return nil
}

// Render executes the named template with the given data.
func (tr *TemplateRenderer) Render(w io.Writer, name string, data any) error {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.templates.ExecuteTemplate(w, name, data)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 January 2006 15:04")
}

func formatDateShort(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

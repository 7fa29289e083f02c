// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// pageTemplate is the root template name.
const pageTemplate = "dashboard.html.tmpl"

// TemplateEngine renders dashboard pages from the embedded templates.
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses the embedded templates with the helper functions.
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New(pageTemplate).Funcs(buildFuncMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// Execute renders the complete page into memory, so a caller can choose the
// response status after the template has succeeded.
func (te *TemplateEngine) Execute(page *Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := te.tmpl.ExecuteTemplate(&buf, pageTemplate, page); err != nil {
		return nil, fmt.Errorf("execute dashboard template: %w", err)
	}
	return buf.Bytes(), nil
}

func buildFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatNumber": formatWithCommas,
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04 UTC")
		},
		"join": strings.Join,
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
	}
}

// formatWithCommas renders n with thousands separators.
func formatWithCommas(n int64) string {
	if n < 0 {
		return "-" + formatWithCommas(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	s := fmt.Sprintf("%d", n)
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}

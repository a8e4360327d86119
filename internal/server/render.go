package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	textPolicy = newTextPolicy()
)

func newTextPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// renderText renders authored guide text as sanitized HTML. Newlines in
// the source survive as line breaks.
func renderText(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(strings.TrimSpace(textPolicy.Sanitize(buf.String())))
}

// renderInline is renderText without the wrapping paragraph, for list
// items and card fields.
func renderInline(src string) template.HTML {
	out := string(renderText(src))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}

var templateFuncs = template.FuncMap{
	"text":   renderText,
	"inline": renderInline,
	"inc":    func(i int) int { return i + 1 },
	"percent": func(p float64) string {
		return fmt.Sprintf("%.2f%%", p)
	},
}

type templates struct {
	once sync.Once
	t    *template.Template
	err  error
}

var pageTemplates templates

func (ts *templates) get() (*template.Template, error) {
	ts.once.Do(func() {
		ts.t, ts.err = template.New("_root").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	})
	return ts.t, ts.err
}

func execute(w io.Writer, name string, data any) error {
	t, err := pageTemplates.get()
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	return t.ExecuteTemplate(w, name, data)
}

// renderFragment executes a template into a string, for live updates.
func renderFragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := execute(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package newsletter

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"strings"

	"github.com/jimdaga/morning-press/internal/models"
)

//go:embed templates/newsletter.html
var templateFS embed.FS

// Renderer turns a Newsletter into email-ready HTML. When the template
// fails it falls back to a self-contained hand-built document so a broken
// template never blocks a send.
type Renderer struct {
	name   string
	tmpl   *template.Template
	logger *slog.Logger
}

type templateData struct {
	Newsletter models.Newsletter
	Name       string
}

func NewRenderer(newsletterName string, logger *slog.Logger) *Renderer {
	tmpl, err := template.ParseFS(templateFS, "templates/newsletter.html")
	if err != nil {
		logger.Error("Failed to parse newsletter template, fallback HTML will be used", "error", err)
		tmpl = nil
	}
	return &Renderer{name: newsletterName, tmpl: tmpl, logger: logger}
}

// RenderHTML renders the edition, substituting the fallback document on any
// template failure.
func (r *Renderer) RenderHTML(n models.Newsletter) string {
	if r.tmpl == nil {
		return r.fallbackHTML(n)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, templateData{Newsletter: n, Name: r.name}); err != nil {
		r.logger.Error("Template rendering failed, using fallback HTML", "error", err)
		return r.fallbackHTML(n)
	}
	return buf.String()
}

// fallbackHTML builds a minimal but complete document with no template
// machinery at all.
func (r *Renderer) fallbackHTML(n models.Newsletter) string {
	var b strings.Builder

	b.WriteString(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
`)
	fmt.Fprintf(&b, "<h1 style=\"color: #007acc;\">%s</h1>\n", html.EscapeString(r.name))
	fmt.Fprintf(&b, "<h2>%s</h2>\n", n.Date.Format("January 02, 2006"))
	fmt.Fprintf(&b, "<p><em>%s</em></p>\n", html.EscapeString(n.Intro))
	b.WriteString("<h3>Top Stories</h3>\n")

	for _, a := range n.Articles {
		b.WriteString(`<div style="margin-bottom: 20px; padding-bottom: 15px; border-bottom: 1px solid #ccc;">` + "\n")
		fmt.Fprintf(&b, "<h4><a href=%q style=\"color: #007acc;\">%s</a></h4>\n",
			a.URL, html.EscapeString(a.Title))
		fmt.Fprintf(&b, "<p style=\"font-size: 12px; color: #666;\">%s | Score: %.1f</p>\n",
			html.EscapeString(a.Source), a.ImportanceScore)
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(a.AISummary))
		b.WriteString("</div>\n")
	}

	fmt.Fprintf(&b, "<p><em>%s</em></p>\n<hr>\n", html.EscapeString(n.Outro))
	fmt.Fprintf(&b, "<p style=\"text-align: center; color: #666; font-size: 12px;\">%s | Curated by AI</p>\n",
		html.EscapeString(r.name))
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

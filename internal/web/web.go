// Package web holds the embedded HTML templates and the session flash
// helpers shared by the subscriber and viewer handlers.
package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Flash queues a one-shot message for the next rendered page. Kind is a
// CSS class name like "success" or "error".
func Flash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(kind + "|" + message)
	_ = session.Save()
}

// FlashMessage is a consumed flash ready for rendering.
type FlashMessage struct {
	Kind    string
	Message string
}

// Flashes drains and returns the queued flash messages.
func Flashes(c *gin.Context) []FlashMessage {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()

	messages := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		s, ok := f.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			messages = append(messages, FlashMessage{Kind: "info", Message: s})
			continue
		}
		messages = append(messages, FlashMessage{Kind: kind, Message: msg})
	}
	return messages
}

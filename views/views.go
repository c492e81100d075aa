// Package views embeds the HTML templates and builds the template engine.
package views

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gofiber/template/html/v3"
)

//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS

// NewEngine returns a template engine over the embedded views. Sanitized
// answer markup is rendered through the safeHTML function.
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.Reload(reload)
	engine.AddFunc("safeHTML", func(s string) template.HTML {
		return template.HTML(s)
	})
	return engine
}

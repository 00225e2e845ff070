package handlers

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

const converterTemplate = "index.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

// loadTemplates installs the embedded page templates on the engine.
func loadTemplates(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.tmpl")))
}

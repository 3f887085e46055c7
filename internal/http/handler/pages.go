package handler

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/page.html
var pageFS embed.FS

var pageTmpl = template.Must(template.ParseFS(pageFS, "templates/page.html"))

const (
	toneSuccess = "success"
	toneError   = "error"
)

// page is a small HTML result screen shown to admins following an emailed link.
type page struct {
	Title    string
	Heading  string
	Tone     string
	Lines    []string
	Link     string
	LinkText string
}

func renderPage(c *fiber.Ctx, status int, p page) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

package controllers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/blogem/personal-site/models"
	"github.com/blogem/personal-site/web"
)

// PagesController serves the static informational pages
type PagesController struct {
	markdown goldmark.Markdown
}

// NewPagesController creates a new pages controller.
// Raw HTML in page content is escaped since WithUnsafe is not set.
func NewPagesController() *PagesController {
	return &PagesController{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Show returns a handler rendering web/content/<slug>.md inside the layout
func (c *PagesController) Show(slug, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := c.renderContent(slug)
		if err != nil {
			http.Error(w, "Failed to load page", http.StatusInternalServerError)
			return
		}

		renderTemplate(w, r, "page.html", &models.PageData{
			Title:       title,
			CurrentPage: slug,
			Data:        body,
		})
	}
}

// renderContent converts a page's Markdown source to HTML
func (c *PagesController) renderContent(slug string) (template.HTML, error) {
	source, err := web.FS.ReadFile("content/" + slug + ".md")
	if err != nil {
		return "", fmt.Errorf("failed to read page %s: %w", slug, err)
	}

	var buf bytes.Buffer
	if err := c.markdown.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("failed to render page %s: %w", slug, err)
	}

	return template.HTML(buf.String()), nil
}

package controllers

import (
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"

	"github.com/blogem/personal-site/authenticator"
	"github.com/blogem/personal-site/config"
	"github.com/blogem/personal-site/middleware"
	"github.com/blogem/personal-site/models"
	"github.com/blogem/personal-site/services"
	"github.com/blogem/personal-site/web"
)

// renderTemplate renders a page inside the layout with status 200
func renderTemplate(w http.ResponseWriter, r *http.Request, pageTemplate string, data *models.PageData) error {
	return renderTemplateWithStatus(w, r, http.StatusOK, pageTemplate, data)
}

// renderTemplateWithStatus renders a page inside the layout.
// Pending flash messages, the login state and the CSRF field are filled in here.
func renderTemplateWithStatus(w http.ResponseWriter, r *http.Request, statusCode int, pageTemplate string, data *models.PageData) error {
	tmpl := template.New("layout.html")
	tmpl.Funcs(template.FuncMap{
		"formatDateTime": models.FormatDateTime,
	})

	// Parse layout and page template
	_, err := tmpl.ParseFS(web.FS, "templates/layout.html", "templates/"+pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return err
	}

	data.Flashes = append(data.Flashes, middleware.PopFlashes(r)...)
	data.LoggedIn = middleware.IsAuthenticated(r)
	data.CSRFField = csrf.TemplateField(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

// Controllers holds all controller instances
type Controllers struct {
	Pages   *PagesController
	Contact *ContactController
	Auth    *AuthController
	Admin   *AdminController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, auth *authenticator.Authenticator, cfg *config.Config, logger zerolog.Logger) *Controllers {
	return &Controllers{
		Pages:   NewPagesController(),
		Contact: NewContactController(services, cfg, logger),
		Auth:    NewAuthController(auth),
		Admin:   NewAdminController(services, logger),
	}
}

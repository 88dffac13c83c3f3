package controllers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/blogem/personal-site/models"
	"github.com/blogem/personal-site/services"
)

// AdminController handles the guarded admin pages
type AdminController struct {
	services *services.Services
	logger   zerolog.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(services *services.Services, logger zerolog.Logger) *AdminController {
	return &AdminController{
		services: services,
		logger:   logger,
	}
}

// Messages handles GET /admin/messages
func (c *AdminController) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := c.services.Contact.ListMessages(r.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load contact messages")
		http.Error(w, "Failed to load messages", http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Messages []models.ContactMessage
	}{
		Messages: messages,
	}

	renderTemplate(w, r, "admin_messages.html", &models.PageData{
		Title:       "Contact Messages",
		CurrentPage: "admin",
		Data:        templateData,
	})
}

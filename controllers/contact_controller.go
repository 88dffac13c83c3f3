package controllers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/blogem/personal-site/config"
	"github.com/blogem/personal-site/middleware"
	"github.com/blogem/personal-site/models"
	"github.com/blogem/personal-site/services"
)

// ContactController handles the contact form
type ContactController struct {
	services   *services.Services
	ownerEmail string
	logger     zerolog.Logger
}

// NewContactController creates a new contact controller
func NewContactController(services *services.Services, cfg *config.Config, logger zerolog.Logger) *ContactController {
	return &ContactController{
		services:   services,
		ownerEmail: cfg.Mail.Owner,
		logger:     logger,
	}
}

type contactPageData struct {
	OwnerEmail string
	Form       *models.ContactForm
	Errors     models.ValidationErrors
}

// Show handles GET /contact
func (c *ContactController) Show(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, &models.ContactForm{}, nil)
}

// Submit handles POST /contact
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}

	result, err := c.services.Contact.Submit(r.Context(), form)
	if err != nil {
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			// Redisplay the form with inline errors
			c.render(w, r, http.StatusBadRequest, form, verrs)
			return
		}

		c.logger.Error().Err(err).Msg("contact submission failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if result.NotifyErr != nil {
		middleware.AddFlash(r, models.FlashDanger, "There was an issue sending the email: "+result.NotifyErr.Error())
	} else {
		middleware.AddFlash(r, models.FlashSuccess, "Your message has been sent successfully!")
	}

	// Redirect so a refresh does not resubmit
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (c *ContactController) render(w http.ResponseWriter, r *http.Request, status int, form *models.ContactForm, errs models.ValidationErrors) {
	err := renderTemplateWithStatus(w, r, status, "contact.html", &models.PageData{
		Title:       "Contact",
		CurrentPage: "contact",
		Data: contactPageData{
			OwnerEmail: c.ownerEmail,
			Form:       form,
			Errors:     errs,
		},
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to render contact page")
	}
}

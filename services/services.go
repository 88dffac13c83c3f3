package services

import (
	"github.com/rs/zerolog"

	"github.com/blogem/personal-site/config"
	"github.com/blogem/personal-site/mailer"
	"github.com/blogem/personal-site/repositories"
)

// Services holds all service instances
type Services struct {
	Contact ContactService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, sender mailer.Sender, cfg *config.Config, logger zerolog.Logger) *Services {
	return &Services{
		Contact: NewContactService(repos.ContactMessages, sender, cfg, logger),
	}
}

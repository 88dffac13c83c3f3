package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blogem/personal-site/config"
	"github.com/blogem/personal-site/mailer"
	"github.com/blogem/personal-site/metrics"
	"github.com/blogem/personal-site/models"
	"github.com/blogem/personal-site/repositories"
)

// ContactService interface defines contact form business logic
type ContactService interface {
	Submit(ctx context.Context, form *models.ContactForm) (*SubmitResult, error)
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
}

// SubmitResult describes a stored submission and whether the owner was notified
type SubmitResult struct {
	Message   *models.ContactMessage
	NotifyErr error // non-nil when the notification email could not be sent
}

// contactService implements ContactService interface
type contactService struct {
	repo   repositories.ContactMessageRepository
	sender mailer.Sender
	mail   config.MailConfig
	logger zerolog.Logger
}

// NewContactService creates a new contact service
func NewContactService(repo repositories.ContactMessageRepository, sender mailer.Sender, cfg *config.Config, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:   repo,
		sender: sender,
		mail:   cfg.Mail,
		logger: logger,
	}
}

// Submit validates the form, stores the message and notifies the owner.
// Validation failures are returned as models.ValidationErrors and nothing is
// stored. A storage failure is returned as-is. A notification failure does not
// fail the call; it is reported in SubmitResult.NotifyErr.
func (s *contactService) Submit(ctx context.Context, form *models.ContactForm) (*SubmitResult, error) {
	if errors := form.Validate(); errors.HasErrors() {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, errors
	}

	msg := form.ToMessage()
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}
	metrics.ContactSubmissions.WithLabelValues("stored").Inc()

	s.logger.Info().
		Int64("message_id", msg.ID).
		Str("subject", msg.Subject).
		Msg("contact message stored")

	result := &SubmitResult{Message: msg}

	if err := s.sender.Send(ctx, s.notification(msg)); err != nil {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		s.logger.Error().
			Err(err).
			Int64("message_id", msg.ID).
			Msg("failed to send contact notification")
		result.NotifyErr = err
		return result, nil
	}
	metrics.NotificationsSent.WithLabelValues("sent").Inc()

	return result, nil
}

// notification builds the owner notification for a stored message
func (s *contactService) notification(msg *models.ContactMessage) mailer.Message {
	return mailer.Message{
		FromName:    s.mail.SenderName,
		FromAddress: s.mail.Username,
		To:          []string{s.mail.Owner},
		Subject:     "New Contact Form Submission: " + msg.Subject,
		Body:        fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message),
	}
}

// ListMessages retrieves all contact messages, newest first
func (s *contactService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.GetAllNewestFirst(ctx)
}

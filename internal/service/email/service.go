package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/domain"
)

// Provider defines the interface for email providers
type Provider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// Config holds email service configuration
type Config struct {
	// Provider type: "sendgrid" or "smtp"
	Provider string

	FromEmail string
	FromName  string

	// SendGrid configuration
	SendGridAPIKey string

	// SMTP configuration (for Mailhog or other SMTP servers)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool

	// Base URL for links in emails
	BaseURL string
}

// DefaultConfig returns a default configuration for development (Mailhog)
func DefaultConfig() *Config {
	return &Config{
		Provider:   "smtp",
		FromEmail:  "noreply@evsync.io",
		FromName:   "EVSync",
		SMTPHost:   "localhost",
		SMTPPort:   1025, // Mailhog default port
		SMTPUseTLS: false,
		BaseURL:    "http://localhost:3000",
	}
}

// Service implements the EmailService interface
type Service struct {
	config    *Config
	provider  Provider
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewService creates a new email service
func NewService(config *Config, log *zap.Logger) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
		log:       log,
	}

	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		s.provider = NewSendGridProvider(config.SendGridAPIKey, config.FromEmail, config.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.FromEmail,
			config.FromName,
			config.SMTPUseTLS,
		)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", config.Provider)
	}

	s.loadTemplates()

	return s, nil
}

func (s *Service) loadTemplates() {
	s.templates["reservation_confirmed"] = template.Must(template.New("reservation_confirmed").Parse(reservationConfirmedTemplate))
	s.templates["session_completed"] = template.Must(template.New("session_completed").Parse(sessionCompletedTemplate))
}

// Send sends a plain-text email
func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	s.log.Info("Sending email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, body, false); err != nil {
		s.log.Error("Failed to send email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) sendTemplate(ctx context.Context, to, templateName, subject string, data map[string]interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	data["BaseURL"] = s.config.BaseURL

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	s.log.Info("Sending email",
		zap.String("to", to),
		zap.String("template", templateName),
	)

	if err := s.provider.Send(ctx, to, subject, buf.String(), true); err != nil {
		s.log.Error("Failed to send email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendReservationConfirmed notifies a consumer that a reservation was
// confirmed and the fee debited.
func (s *Service) SendReservationConfirmed(ctx context.Context, to string, reservation *domain.Reservation) error {
	data := map[string]interface{}{
		"ReservationID": reservation.ID,
		"StationID":     reservation.StationID,
		"StartTime":     reservation.StartTime.Format("2006-01-02 15:04"),
		"EndTime":       reservation.EndTime().Format("2006-01-02 15:04"),
		"Fee":           fmt.Sprintf("%.2f", reservation.Fee),
	}

	return s.sendTemplate(ctx, to, "reservation_confirmed", "Your charging reservation is confirmed", data)
}

// SendSessionCompleted sends the settlement summary after a charging
// session ends.
func (s *Service) SendSessionCompleted(ctx context.Context, to string, session *domain.ChargingSession) error {
	endTime := ""
	if session.EndTime != nil {
		endTime = session.EndTime.Format("2006-01-02 15:04")
	}

	data := map[string]interface{}{
		"SessionID": session.ID,
		"StartTime": session.StartTime.Format("2006-01-02 15:04"),
		"EndTime":   endTime,
		"EnergyKWh": fmt.Sprintf("%.2f", session.EnergyKWh),
		"TotalCost": fmt.Sprintf("%.2f", session.TotalCost),
	}

	return s.sendTemplate(ctx, to, "session_completed", "Charging session completed", data)
}

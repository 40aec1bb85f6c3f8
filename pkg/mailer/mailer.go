package mailer

import (
	"context"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/wneessen/go-mail"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/Leadpulse/leadpulse/pkg/mailer Mailer

// OutgoingEmail is a fully rendered message ready to send
type OutgoingEmail struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendReceipt reports a successful send
type SendReceipt struct {
	// ExternalID is the transport-assigned message id, when one exists
	ExternalID string
}

// Mailer is the interface for sending rendered messages. Errors surface to
// the caller as action-level failures; no retry happens here.
type Mailer interface {
	SendMessage(ctx context.Context, email OutgoingEmail) (*SendReceipt, error)
}

// Config holds the configuration for the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// SMTPMailer implements the Mailer interface using SMTP
type SMTPMailer struct {
	config   *Config
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: false,
	}
}

// NewTestSMTPMailer creates a new SMTP mailer in test mode (won't connect to
// an SMTP server)
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: true,
	}
}

// SendMessage sends one rendered message over SMTP
func (m *SMTPMailer) SendMessage(ctx context.Context, email OutgoingEmail) (*SendReceipt, error) {
	if !govalidator.IsEmail(email.To) {
		return nil, fmt.Errorf("invalid recipient address: %s", email.To)
	}

	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())
	msg.SetMessageID()

	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}

	msg.Subject(email.Subject)
	if email.HTMLBody != "" {
		msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)
		if email.TextBody != "" {
			msg.AddAlternativeString(mail.TypeTextPlain, email.TextBody)
		}
	} else {
		msg.SetBodyString(mail.TypeTextPlain, email.TextBody)
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return nil, err
	}

	messageID := ""
	if ids := msg.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		messageID = ids[0]
	}

	// Test mode has no client; report success without connecting
	if client == nil {
		return &SendReceipt{ExternalID: messageID}, nil
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return &SendReceipt{ExternalID: messageID}, nil
}

// createSMTPClient creates an SMTP client from the mailer config.
// Returns nil in test mode.
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	if m.testMode {
		return nil, nil
	}

	client, err := mail.NewClient(m.config.SMTPHost,
		mail.WithPort(m.config.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.config.SMTPUsername),
		mail.WithPassword(m.config.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client, nil
}

package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendPassEmail(ctx context.Context, to string, cc []string, data PassEmailData, attachments []Attachment) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
	sender sender
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	dialer := &gomail.Dialer{Host: config.Host, Port: config.Port, SSL: config.Port == 465}
	// an unauthenticated relay is fine; gomail only authenticates with a username
	if config.Username != "" && config.Password != "" {
		dialer.Username = config.Username
		dialer.Password = config.Password
	}
	if config.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host, MinVersion: tls.VersionTLS12}
		dialer.SSL = config.Port == 465
	}
	return newEmailService(config, logger, dialer)
}

func newEmailService(config SMTPConfig, logger zerolog.Logger, s sender) *EmailServiceImpl {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
		sender: s,
	}
}

// configured reports whether real delivery is possible.
func (s *EmailServiceImpl) configured() bool {
	return s.config.Host != ""
}

// SendPassEmail sends the QR pass email with every pass image attached.
func (s *EmailServiceImpl) SendPassEmail(ctx context.Context, to string, cc []string, data PassEmailData, attachments []Attachment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, htmlBody, textBody, err := BuildPassEmail(data)
	if err != nil {
		return err
	}

	// Without an SMTP host the email is only logged (development)
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", to).
			Strs("cc", cc).
			Str("subject", subject).
			Int("attachments", len(attachments)).
			Msg("SMTP host not configured - pass email not sent")
		return nil
	}

	msg := s.buildMessage(to, cc, subject, htmlBody, textBody, attachments)
	if err := s.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.logger.Info().Str("toEmail", to).Str("subject", subject).Msg("Pass email sent")
	return nil
}

func (s *EmailServiceImpl) buildMessage(to string, cc []string, subject, htmlBody, textBody string, attachments []Attachment) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", to)
	if len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	for _, a := range attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		// gomail guesses the type from the extension otherwise
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {fmt.Sprintf("%s; name=%q", a.ContentType, a.Filename)},
			}))
		}
		m.Attach(a.Filename, settings...)
	}
	return m
}

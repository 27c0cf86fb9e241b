// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pitstop-performance/backend/internal/config"
)

// Email represents an outgoing message
type Email struct {
	To          []string
	Subject     string
	HTMLContent string
}

// EmailService handles all email operations
type EmailService struct {
	config *config.Config
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// IsConfigured reports whether SMTP credentials are present
func (s *EmailService) IsConfigured() bool {
	return s.config.Email.SMTPHost != "" && s.config.Email.SMTPUser != ""
}

// SendVerificationEmail sends the account verification mail to a new user
func (s *EmailService) SendVerificationEmail(userEmail, username, verificationCode string) error {
	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify?code=%s", s.config.App.BaseURL, verificationCode)

	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to %s, %s!</h2>
			<p>Please verify your email address by clicking the link below:</p>
			<p><a href="%s">Verify Email</a></p>
			<p>If you did not create this account, you can ignore this message.</p>
		</body>
		</html>`,
		s.config.App.Name, username, verificationURL)

	email := &Email{
		To:          []string{userEmail},
		Subject:     fmt.Sprintf("Verify your %s account", s.config.App.Name),
		HTMLContent: htmlContent,
	}

	return s.SendEmail(email)
}

// SendEmail sends an email over SMTP
func (s *EmailService) SendEmail(email *Email) error {
	if !s.IsConfigured() {
		return fmt.Errorf("SMTP configuration incomplete: missing host or username")
	}

	auth := smtp.PlainAuth("",
		s.config.Email.SMTPUser,
		s.config.Email.SMTPPass,
		s.config.Email.SMTPHost)

	fromEmail := s.config.Email.FromEmail
	fromName := s.config.Email.FromName
	var from string
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	} else {
		from = fromEmail
	}

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = strings.Join(email.To, ", ")
	headers["Subject"] = email.Subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=\"utf-8\""

	var msg bytes.Buffer
	for key, value := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	msg.WriteString("\r\n")
	msg.WriteString(email.HTMLContent)

	serverAddr := fmt.Sprintf("%s:%d", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(serverAddr, auth, fromEmail, email.To, msg.Bytes())
}

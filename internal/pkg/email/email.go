package email

import (
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendVerificationEmail(toEmail, toName, token string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	// BaseURL is where the API is reachable from a mail client
	BaseURL string
}

// configured reports whether mail can actually be delivered
func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.FromEmail != ""
}

// EmailServiceImpl implements EmailService over SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new EmailService. Without an SMTP host mails are
// only logged.
func NewEmailService(config SMTPConfig, logger zerolog.Logger) *EmailServiceImpl {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// VerificationURL returns the link a student follows to verify the address
func (s *EmailServiceImpl) VerificationURL(token string) string {
	return fmt.Sprintf("%s/api/user/verify/%s", strings.TrimRight(s.config.BaseURL, "/"), token)
}

// SendVerificationEmail sends an email with a verification link
func (s *EmailServiceImpl) SendVerificationEmail(toEmail, toName, token string) error {
	verificationURL := s.VerificationURL(token)

	if !s.config.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("verificationURL", verificationURL).
			Msg("SMTP not configured - verification email not sent")
		return nil
	}

	subject := "Verify your email address - Placement Portal"
	body := fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<p>Hello %s,</p>
		<p>Please confirm your email address to activate your placement portal account.</p>
		<p style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Verify Email</a>
		</p>
		<p>The link expires in 24 hours. If you did not register, ignore this email.</p>
		<p>%s</p>
	</div>
</body>
</html>`, toName, verificationURL, s.config.FromName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", toEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	if err := s.send(addr, auth, s.config.FromEmail, []string{toEmail}, []byte(msg.String())); err != nil {
		s.logger.Error().Err(err).Str("server", addr).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}

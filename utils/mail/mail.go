package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strconv"

	"github.com/salon16/booking/logger"
	gomail "gopkg.in/gomail.v2"
)

// Email template names, relative to the embedded templates/email directory.
const (
	BookingAcceptedTemplate = "booking_accepted.html"
	BookingRejectedTemplate = "booking_rejected.html"
)

var templates *template.Template

// InitTemplates parses the embedded email templates. Must be called once at
// startup before any email is sent.
func InitTemplates(fsys fs.FS) error {
	t, err := template.ParseFS(fsys, "templates/email/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}
	templates = t
	return nil
}

// Sender delivers a rendered HTML email.
type Sender interface {
	Send(toEmail, subject, templateName string, data interface{}) error
}

// SMTPSender implements Sender over an authenticated SMTP transport
// configured from the environment.
type SMTPSender struct{}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{}
}

func (s *SMTPSender) Send(toEmail, subject, templateName string, data interface{}) error {
	if templates == nil {
		return fmt.Errorf("email templates not initialized")
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", templateName, err)
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", os.Getenv("FROM_EMAIL"))
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body.String())

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		logger.ErrorLogger.Errorf("Invalid SMTP port: %v", err)
		return fmt.Errorf("invalid SMTP port: %w", err)
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpUsername := os.Getenv("SMTP_USERNAME")
	smtpPassword := os.Getenv("SMTP_PASSWORD")

	dialer := gomail.NewDialer(smtpHost, port, smtpUsername, smtpPassword)
	dialer.TLSConfig = &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         smtpHost,
	}

	logger.InfoLogger.Printf("Attempting to connect to SMTP server: %s:%d", smtpHost, port)

	if err := dialer.DialAndSend(mailer); err != nil {
		logger.ErrorLogger.Errorf("Failed to send email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.InfoLogger.Printf("Successfully sent email to %s", toEmail)
	return nil
}

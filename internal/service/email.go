package service

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func NewEmailService() IEmailService {
	return &EmailService{
		smtpHost:     readSecret("smtp_host"),
		smtpPort:     readSecret("smtp_port"),
		smtpUsername: readSecret("smtp_username"),
		smtpPassword: readSecret("smtp_password"),
		fromEmail:    readSecret("email_from"),
		fromName:     readSecret("email_from_name"),
	}
}

// SendWelcomeEmail greets a new account. Delivery failure is the
// caller's problem to log, not to fail registration over.
func (s *EmailService) SendWelcomeEmail(ctx context.Context, to, username string) error {
	subject := "Welcome to Linkgrove"
	body := fmt.Sprintf("Hi %s,\n\nYour page is live at /%s. Make it yours!\n", username, username)
	return s.sendEmail(to, subject, body)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.smtpHost == "" || s.smtpPort == "" {
		log.Printf("[EmailService] SMTP not configured, would send to %s: %s", to, subject)
		return nil
	}

	from := s.fromEmail
	msg := strings.Join([]string{
		"From: " + s.fromName + " <" + from + ">",
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional email through Resend. In development it
// logs the message instead of sending, so the flow works without an API key.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	appURL    string
	appName   string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appURL:    appURL,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendVerification emails the account a link carrying its single-use
// verification code.
func (s *EmailService) SendVerification(email, code string) error {
	verifyURL := fmt.Sprintf("%s/api/users/verify/%s", s.appURL, code)
	subject, body := verificationEmailTemplate(verifyURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "verification", "to", email, "subject", subject, "url", verifyURL)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "verification", "to", email)
	}
	return err
}

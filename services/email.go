package services

import (
	"fmt"

	"easy_case_app_go/config"
	"easy_case_app_go/logger"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// BuildWelcomeEmail builds the signup welcome email for a new account
func BuildWelcomeEmail(name, toEmail, appURL string) *Email {
	return &Email{
		To:      []string{toEmail},
		Subject: "Welcome to EasyCase",
		HTMLBody: fmt.Sprintf(
			"<p>Hello %s,</p><p>Your EasyCase account is ready. Sign in at <a href=\"%s\">%s</a> to start managing your clients, cases and hearings.</p>",
			name, appURL, appURL),
		TextBody: fmt.Sprintf(
			"Hello %s,\n\nYour EasyCase account is ready. Sign in at %s to start managing your clients, cases and hearings.\n",
			name, appURL),
	}
}

// SendEmail sends an email using the Resend API.
// In test mode the email is logged instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logger.Get().Info("email (test mode, not sent)",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject))
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	logger.Get().Info("email sent",
		zap.String("id", sent.Id),
		zap.Strings("to", email.To))
	return nil
}

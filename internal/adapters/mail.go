package adapters

import (
	"context"
	"fmt"
	"time"

	mailjet "github.com/mailjet/mailjet-apiv3-go/v4"
	"go.uber.org/zap"

	"mathdefenders/internal/bootstrap"
)

// AdapterMail sends transactional mail through Mailjet. In
// non-production mode dispatch is skipped entirely so local runs need
// no provider credentials.
type AdapterMail struct {
	client *mailjet.Client
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
}

func NewAdapterMail(cfg *bootstrap.Config, log *zap.SugaredLogger) *AdapterMail {
	a := &AdapterMail{
		cfg: cfg,
		log: log,
	}
	if cfg.Production {
		a.client = mailjet.NewMailjetClient(cfg.MailjetAPIKey, cfg.MailjetSecretKey)
	}
	return a
}

func (a *AdapterMail) SendConfirmationMail(ctx context.Context, toEmail, username, confirmationLink string) error {
	subject := "Confirm your Mathematical Base Defenders account"
	text := fmt.Sprintf(
		"Hi %s!\n\nThank you for registering an account on Mathematical Base Defenders.\n"+
			"Please confirm your e-mail address within 30 minutes by opening this link:\n\n%s\n\n"+
			"If you did not register, you can safely ignore this message.",
		username, confirmationLink)
	return a.send(ctx, toEmail, subject, text)
}

func (a *AdapterMail) SendPasswordResetMail(ctx context.Context, toEmail, resetLink string) error {
	subject := "Reset your Mathematical Base Defenders password"
	text := fmt.Sprintf(
		"A password reset was requested for the Mathematical Base Defenders account using this e-mail address.\n"+
			"The link below is valid for 30 minutes:\n\n%s\n\n"+
			"If you did not request a reset, you can safely ignore this message.",
		resetLink)
	return a.send(ctx, toEmail, subject, text)
}

func (a *AdapterMail) send(ctx context.Context, toEmail, subject, text string) error {
	if !a.cfg.Production {
		a.log.Infow("mail dispatch skipped (non-production)", "to", toEmail, "subject", subject)
		return nil
	}

	ctxSend, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: a.cfg.MailFromAddress,
					Name:  a.cfg.MailFromName,
				},
				To: &mailjet.RecipientsV31{
					mailjet.RecipientV31{Email: toEmail},
				},
				Subject:  subject,
				TextPart: text,
			},
		},
	}

	if _, err := a.client.SendMailV31(&messages, mailjet.WithContext(ctxSend)); err != nil {
		return fmt.Errorf("mailjet send failed: %w", err)
	}
	return nil
}

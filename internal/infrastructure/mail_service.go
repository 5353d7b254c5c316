package infrastructure

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailService delivers transactional email through SendGrid. It is only used
// to transport the password-reset link.
type MailService struct {
	client      *sendgrid.Client
	senderName  string
	senderEmail string
	frontendURL string
}

func NewMailService(apiKey, senderName, senderEmail, frontendURL string) *MailService {
	return &MailService{
		client:      sendgrid.NewSendClient(apiKey),
		senderName:  senderName,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (m *MailService) SendPasswordReset(ctx context.Context, recipientEmail, firstName, resetToken string) error {
	link := fmt.Sprintf("%s/reset-password/%s", m.frontendURL, resetToken)

	from := mail.NewEmail(m.senderName, m.senderEmail)
	to := mail.NewEmail(firstName, recipientEmail)
	subject := "Reset your password"

	plain := fmt.Sprintf("Hi %s,\n\nPlease follow this link to reset your password: %s. This link is valid for only an hour.\n\nThanks!", firstName, link)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Please follow this link to reset your password: <a href=%q>%s</a>. This link is valid for only an hour.</p><p>Thanks!</p>", firstName, link, link)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		log.Println("Failed to send password reset email:", err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Println("SendGrid rejected password reset email, status:", response.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

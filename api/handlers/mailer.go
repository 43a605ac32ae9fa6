package handlers

import (
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends a single plain-text notification. Injected so handlers can be
// tested without the sendgrid client.
type Mailer interface {
	Send(to, replyTo, subject, body string) error
}

// SendGridMailer sends mail through the sendgrid API
type SendGridMailer struct {
	APIKey string
	From   string
}

// NewSendGridMailer builds a mailer from the configured key and sender
func NewSendGridMailer(apiKey, from string) SendGridMailer {
	return SendGridMailer{APIKey: apiKey, From: from}
}

// Send delivers a plain-text message to a single recipient
func (m SendGridMailer) Send(to, replyTo, subject, body string) error {
	if m.APIKey == "" {
		return errors.New("SENDGRID_API_KEY not set, cannot send email")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("RCPP Help Desk", m.From),
		subject,
		mail.NewEmail("", to),
		body,
		"",
	)
	if replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", replyTo))
	}

	client := sendgrid.NewSendClient(m.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("mail send returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

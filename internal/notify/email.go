package notify

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender отправляет email через SendGrid
type EmailSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       Logger
}

// NewEmailSender создает отправителя email
// Если apiKey пустой, отправитель считается не сконфигурированным
func NewEmailSender(apiKey, fromEmail, fromName string, log Logger) *EmailSender {
	var client *sendgrid.Client
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}

	return &EmailSender{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

// Send отправляет email с темой и текстом
func (s *EmailSender) Send(toEmail, toName, subject, body string) error {
	if s.client == nil || s.fromEmail == "" {
		return fmt.Errorf("%w: sendgrid api key or from email is empty", ErrNotConfigured)
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid request failed: %v", ErrSendFailed, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid returned status %d: %s", ErrSendFailed, response.StatusCode, response.Body)
	}

	s.log.Info("[EmailSender.Send] Email sent to %s, subject: %s, status: %d", toEmail, subject, response.StatusCode)

	return nil
}

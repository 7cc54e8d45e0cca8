package notify

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender отправляет SMS через Twilio
type SMSSender struct {
	client     *twilio.RestClient
	fromNumber string
	log        Logger
}

// NewSMSSender создает отправителя SMS
// Если accountSID пустой, отправитель считается не сконфигурированным
func NewSMSSender(accountSID, authToken, fromNumber string, log Logger) *SMSSender {
	var client *twilio.RestClient
	if accountSID != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
	}

	return &SMSSender{
		client:     client,
		fromNumber: fromNumber,
		log:        log,
	}
}

// Send отправляет SMS на указанный номер
// Номер должен быть в формате E.164
func (s *SMSSender) Send(toNumber, body string) error {
	if s.client == nil || s.fromNumber == "" {
		return fmt.Errorf("%w: twilio credentials or from number is empty", ErrNotConfigured)
	}

	if !strings.HasPrefix(toNumber, "+") {
		s.log.Warn("[SMSSender.Send] Phone number %s is not in E.164 format", toNumber)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: twilio request failed: %v", ErrSendFailed, err)
	}

	if resp != nil && resp.Sid != nil {
		s.log.Info("[SMSSender.Send] SMS sent to %s, sid: %s", toNumber, *resp.Sid)
	}

	return nil
}

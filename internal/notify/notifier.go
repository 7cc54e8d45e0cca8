package notify

import (
	"fmt"

	"github.com/salonmarket/booking-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// emailSender отправка email
type emailSender interface {
	Send(toEmail, toName, subject, body string) error
}

// smsSender отправка SMS
type smsSender interface {
	Send(toNumber, body string) error
}

// Notifier выбирает канал доставки по контактным данным получателя:
// email приоритетнее, SMS используется как запасной канал
type Notifier struct {
	email emailSender
	sms   smsSender
	log   Logger
}

// New создает Notifier с заданными каналами доставки
func New(email emailSender, sms smsSender, log Logger) *Notifier {
	return &Notifier{
		email: email,
		sms:   sms,
		log:   log,
	}
}

// NotifySlotOpened уведомляет участника листа ожидания об освободившемся времени
func (n *Notifier) NotifySlotOpened(entry domain.WaitlistEntry, serviceName string, startTime string) error {
	date := entry.Date.Format(domain.DateFormat)
	body := fmt.Sprintf(
		"Хорошие новости, %s! Освободилось время на услугу «%s»: %s в %s. Запишитесь скорее, пока место свободно.",
		entry.CustomerName, serviceName, date, startTime,
	)

	if entry.Email != nil && *entry.Email != "" {
		subject := fmt.Sprintf("Освободилось время на %s", date)
		if err := n.email.Send(*entry.Email, entry.CustomerName, subject, body); err != nil {
			return fmt.Errorf("failed to notify waitlist entry %d by email: %w", entry.ID, err)
		}
		return nil
	}

	if entry.Phone != nil && *entry.Phone != "" {
		if err := n.sms.Send(*entry.Phone, body); err != nil {
			return fmt.Errorf("failed to notify waitlist entry %d by sms: %w", entry.ID, err)
		}
		return nil
	}

	return fmt.Errorf("%w: waitlist entry %d", ErrNoContact, entry.ID)
}

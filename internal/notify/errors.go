package notify

import "errors"

var (
	// ErrNoContact получатель не имеет ни email, ни телефона
	ErrNoContact = errors.New("recipient has no contact information")
	// ErrSendFailed отправка уведомления не удалась
	ErrSendFailed = errors.New("failed to send notification")
	// ErrNotConfigured канал отправки не сконфигурирован
	ErrNotConfigured = errors.New("notification channel is not configured")
)

package mailer

import "errors"

var (
	// ErrNotConfigured не задан ключ API или адрес отправителя
	ErrNotConfigured = errors.New("mailer: sendgrid is not configured")

	// ErrNoRecipient у бронирования нет email покупателя
	ErrNoRecipient = errors.New("mailer: booking has no customer email")

	// ErrSendFailed SendGrid вернул ошибку или неуспешный статус
	ErrSendFailed = errors.New("mailer: failed to send email")
)

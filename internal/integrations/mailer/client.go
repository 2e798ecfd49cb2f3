package mailer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

// Sender отправка письма; реализуется *sendgrid.Client
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Metrics счётчик результатов отправки
type Metrics interface {
	IncNotification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры отправителя
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// Client отправляет письма о подтверждении бронирования через SendGrid
type Client struct {
	sender  Sender
	from    *mail.Email
	timeout time.Duration
	metrics Metrics
	log     Logger
}

// NewClient создаёт клиента поверх sendgrid.NewSendClient
func NewClient(cfg Config, metrics Metrics, log Logger) (*Client, error) {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil, ErrNotConfigured
	}
	return NewClientWithSender(sendgrid.NewSendClient(cfg.APIKey), cfg, metrics, log), nil
}

// NewClientWithSender создаёт клиента с произвольным Sender (используется в тестах)
func NewClientWithSender(sender Sender, cfg Config, metrics Metrics, log Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		sender:  sender,
		from:    mail.NewEmail(cfg.FromName, cfg.FromEmail),
		timeout: timeout,
		metrics: metrics,
		log:     log,
	}
}

// SendBookingConfirmation отправляет покупателю письмо о подтверждённой сессии
func (c *Client) SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error {
	if booking.CustomerEmail == nil || *booking.CustomerEmail == "" {
		return ErrNoRecipient
	}

	message := buildConfirmation(c.from, booking)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.sender.SendWithContext(ctx, message)
	if err != nil {
		c.metrics.IncNotification("failed")
		return fmt.Errorf("%w: booking id=%d: %v", ErrSendFailed, booking.ID, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.metrics.IncNotification("failed")
		return fmt.Errorf("%w: booking id=%d: status %d: %s", ErrSendFailed, booking.ID, resp.StatusCode, resp.Body)
	}

	c.metrics.IncNotification("sent")
	c.log.Info("Confirmation email sent for booking id=%d (status %d)", booking.ID, resp.StatusCode)
	return nil
}

func buildConfirmation(from *mail.Email, booking *domain.Booking) *mail.SGMailV3 {
	to := mail.NewEmail("", *booking.CustomerEmail)
	date := booking.BusinessDate.Format(domain.DateFormat)

	end, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
	if err != nil {
		end = booking.StartTime
	}

	subject := fmt.Sprintf("Your session on %s at %s is confirmed", date, booking.StartTime)
	plain := fmt.Sprintf("Your coaching session is confirmed.\n\nDate: %s\nTime: %s-%s\nBooking reference: %d\n",
		date, booking.StartTime, end, booking.ID)

	html := fmt.Sprintf("<p>Your coaching session is confirmed.</p><p>Date: %s<br>Time: %s-%s<br>Booking reference: %d</p>",
		date, booking.StartTime, end, booking.ID)

	return mail.NewSingleEmail(from, subject, to, plain, html)
}

package mailer

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/utils"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host       string
	Port       int
	User       string
	Password   string
	Secure     bool
	From       string
	AdminEmail string

	// SkipTLSVerify relaxes certificate validation; development only.
	SkipTLSVerify bool
}

const (
	queueSize       = 64
	idleTimeout     = 30 * time.Second
	maxPerConn      = 50
	defaultFromName = "Rezensionsheld"
)

// Mailer sends templated notification mails over a single pooled SMTP
// connection owned by a background goroutine. Sends are best-effort: the
// queue never blocks a request, and every failure ends up in the log only.
type Mailer struct {
	config Config
	queue  chan *gomail.Message
	done   chan struct{}
	logger *utils.Logger
}

func NewMailer(config Config) *Mailer {
	if config.From == "" {
		config.From = config.User
	}

	m := &Mailer{
		config: config,
		queue:  make(chan *gomail.Message, queueSize),
		done:   make(chan struct{}),
		logger: utils.NewLogger("mailer"),
	}

	go m.run()

	return m
}

func (m *Mailer) run() {
	dialer := gomail.NewDialer(m.config.Host, m.config.Port, m.config.User, m.config.Password)
	dialer.SSL = m.config.Secure
	if m.config.SkipTLSVerify {
		dialer.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var sender gomail.SendCloser
	var sent int
	open := false

	closeConn := func() {
		if open {
			if err := sender.Close(); err != nil {
				m.logger.Warn(context.Background(), "failed to close SMTP connection", map[string]interface{}{
					"error": err.Error(),
				})
			}
			open = false
			sent = 0
		}
	}
	defer closeConn()

	for {
		select {
		case msg, ok := <-m.queue:
			if !ok {
				close(m.done)
				return
			}

			if !open {
				var err error
				sender, err = dialer.Dial()
				if err != nil {
					m.logger.Error(context.Background(), "failed to dial SMTP server", map[string]interface{}{
						"host":  m.config.Host,
						"error": err.Error(),
					})
					continue
				}
				open = true
			}

			if err := gomail.Send(sender, msg); err != nil {
				m.logger.Error(context.Background(), "failed to send mail", map[string]interface{}{
					"to":    msg.GetHeader("To"),
					"error": err.Error(),
				})
			}

			sent++
			if sent >= maxPerConn {
				closeConn()
			}

		case <-time.After(idleTimeout):
			closeConn()
		}
	}
}

// Close drains the queue and stops the send loop.
func (m *Mailer) Close() {
	close(m.queue)
	<-m.done
}

// enqueue hands a message to the send loop without ever blocking the
// caller. A full queue drops the message and logs it.
func (m *Mailer) enqueue(ctx context.Context, msg *gomail.Message) {
	select {
	case m.queue <- msg:
	default:
		m.logger.Error(ctx, "mail queue full, dropping message", map[string]interface{}{
			"to": msg.GetHeader("To"),
		})
	}
}

// SendOrderConfirmation queues the customer confirmation mail.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, order *models.Order) {
	if order.CustomerEmail == "" {
		return
	}

	body, err := renderCustomerConfirmation(order)
	if err != nil {
		m.logger.Error(ctx, "failed to render confirmation mail", map[string]interface{}{
			"order_id": order.OrderID,
			"error":    err.Error(),
		})
		return
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, defaultFromName)
	msg.SetHeader("To", order.CustomerEmail)
	msg.SetHeader("Subject", "Ihre Bestellung "+order.OrderID+" bei Rezensionsheld")
	msg.SetBody("text/html", body)

	m.enqueue(ctx, msg)
}

// SendAdminAlert queues the internal new-order alert. Skipped silently when
// no admin address is configured.
func (m *Mailer) SendAdminAlert(ctx context.Context, order *models.Order) {
	if m.config.AdminEmail == "" {
		return
	}

	body, err := renderAdminAlert(order)
	if err != nil {
		m.logger.Error(ctx, "failed to render admin alert", map[string]interface{}{
			"order_id": order.OrderID,
			"error":    err.Error(),
		})
		return
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, defaultFromName)
	msg.SetHeader("To", m.config.AdminEmail)
	msg.SetHeader("Subject", "Neuer Auftrag "+order.OrderID)
	msg.SetBody("text/html", body)

	m.enqueue(ctx, msg)
}

// SendTest queues a plain diagnostic mail to the admin address.
func (m *Mailer) SendTest(ctx context.Context) {
	to := m.config.AdminEmail
	if to == "" {
		to = m.config.From
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, defaultFromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Rezensionsheld Test-E-Mail")
	msg.SetBody("text/plain", "SMTP-Konfiguration funktioniert.")

	m.enqueue(ctx, msg)
}

// Package mail delivers the buyer and seller order confirmations over SMTP.
// Delivery is advisory: a failure here never changes an order's state.
package mail

import (
	"context"
	"log"

	gomail "gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSender returns the Disabled no-op sender when credentials are missing,
// so callers never have to branch on configuration.
func NewSender(cfg Config) Sender {
	if cfg.Host == "" || cfg.Port == 0 || cfg.Username == "" || cfg.Password == "" {
		log.Println("mail credentials missing, emails will not be sent")
		return Disabled
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == 465
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &smtpSender{dialer: d, from: from}
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpSender) Send(ctx context.Context, m Message) error {
	// gomail has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)
	return s.dialer.DialAndSend(msg)
}

// Disabled is the unconfigured-transport variant: sends are skipped with a
// logged warning and report success.
var Disabled Sender = disabledSender{}

type disabledSender struct{}

func (disabledSender) Send(context.Context, Message) error {
	log.Println("skipping email send, transport is not configured")
	return nil
}

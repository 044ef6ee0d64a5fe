package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends outbound mail. Delivery is best-effort everywhere it is
// used: callers log failures and carry on.
type Mailer interface {
	SendVerification(to, token string) error
	SendInvoice(to string, orderID uint, pdfPath string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendVerification(to, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your ARDeco account")
	msg.SetBody("text/plain",
		fmt.Sprintf("Welcome to ARDeco!\n\nPlease confirm your e-mail address by visiting /verify/%s", token))
	return m.dialer.DialAndSend(msg)
}

func (m *SMTPMailer) SendInvoice(to string, orderID uint, pdfPath string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your ARDeco invoice #%d", orderID))
	msg.SetBody("text/plain", "Thank you for your order. Your invoice is attached.")
	msg.Attach(pdfPath)
	return m.dialer.DialAndSend(msg)
}

// Noop is used when SMTP is not configured and in tests.
type Noop struct{}

func (Noop) SendVerification(string, string) error  { return nil }
func (Noop) SendInvoice(string, uint, string) error { return nil }

package notify

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// Mailer sends payment reminders over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

// SendOverdueNotice tells a client their invoice has fallen behind.
func (m *Mailer) SendOverdueNotice(to, clientName, invoiceNumber string, remaining decimal.Decimal, daysLate int) error {
	subject := fmt.Sprintf("Factura %s vencida", invoiceNumber)
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Tu factura <b>%s</b> tiene un saldo pendiente de <b>%s</b> y lleva %d días de atraso.</p>
		<p>Por favor comunícate con tu consultora para ponerte al día.</p>
	`, clientName, invoiceNumber, remaining.StringFixed(2), daysLate)

	return m.send(to, subject, body)
}

// SendLateFeeNotice informs a client that a late fee now applies.
func (m *Mailer) SendLateFeeNotice(to, clientName, invoiceNumber string, percentage int, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Mora aplicada a la factura %s", invoiceNumber)
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>A tu factura <b>%s</b> se le aplicó una mora del %d%% (%s).</p>
	`, clientName, invoiceNumber, percentage, amount.StringFixed(2))

	return m.send(to, subject, body)
}

package utils

import (
	"log"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends HTML mail over SMTP. When no host is configured it is
// disabled and callers should skip sending.
type Mailer struct {
	host     string
	port     int
	username string
	password string
}

func NewMailer(host, port, username, password string) *Mailer {
	p, err := strconv.Atoi(port)
	if err != nil {
		p = 587
	}
	return &Mailer{host: host, port: p, username: username, password: password}
}

func (m *Mailer) Enabled() bool {
	return m.host != "" && m.username != ""
}

// Send sends an email using the configured SMTP server
func (m *Mailer) Send(to string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.username)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)

	if err := dialer.DialAndSend(mailer); err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Email sent successfully to %s", to)
	return nil
}

package services

import (
	"fmt"

	"github.com/rohits-web03/ideaorbit/internal/config"
	"github.com/rohits-web03/ideaorbit/internal/models"
	"gopkg.in/gomail.v2"
)

// Mailer sends the two transactional emails around a connection. Callers
// log failures and never block a response on them.
type Mailer interface {
	SendConnectionNotification(creator, connector models.User, idea models.Idea, message string) error
	SendConnectionConfirmation(connector, creator models.User, idea models.Idea) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendConnectionNotification tells an idea's creator that someone reached out.
func (m *SMTPMailer) SendConnectionNotification(creator, connector models.User, idea models.Idea, message string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\n%s wants to connect with you about your idea \"%s\":\n\n%s\n\nLog in to IdeaOrbit to reply.\n",
		creator.FirstName, connector.FullName(), idea.Title, message,
	)
	return m.send(creator.Email, fmt.Sprintf("New connection on \"%s\"", idea.Title), body)
}

// SendConnectionConfirmation confirms to the sender that their message went out.
func (m *SMTPMailer) SendConnectionConfirmation(connector, creator models.User, idea models.Idea) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour connection request for \"%s\" was sent to %s. They can see your message and contact details on their profile.\n",
		connector.FirstName, idea.Title, creator.FullName(),
	)
	return m.send(connector.Email, fmt.Sprintf("Connection request sent for \"%s\"", idea.Title), body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

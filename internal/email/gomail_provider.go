package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP settings for the gomail provider.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// GomailProvider implements Provider over SMTP via gomail.
type GomailProvider struct {
	config Config
	dialer *gomail.Dialer
}

func NewGomailProvider(config Config) *GomailProvider {
	return &GomailProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *GomailProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *GomailProvider) SendWelcome(to, name string) error {
	body, err := renderTemplate(welcomeTemplate, TemplateData{
		"Name":    name,
		"Credits": 2,
	})
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Welcome to PrepVio",
		Body:    body,
	})
}

func (p *GomailProvider) SendTicketUpdate(to, ticketNumber, status string) error {
	body, err := renderTemplate(ticketUpdateTemplate, TemplateData{
		"Number": ticketNumber,
		"Status": status,
	})
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:      []string{to},
		Subject: fmt.Sprintf("Ticket %s updated", ticketNumber),
		Body:    body,
	})
}

func (p *GomailProvider) Validate() error {
	if p.config.Host == "" {
		return errors.New("smtp host is not configured")
	}
	if p.config.FromEmail == "" {
		return errors.New("from email is not configured")
	}
	return nil
}

func (p *GomailProvider) Close() error {
	return nil
}

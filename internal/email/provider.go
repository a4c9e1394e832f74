package email

// Provider sends transactional mail. Handlers never talk to SMTP directly;
// services receive a Provider so tests can swap in a mock.
type Provider interface {
	// Send delivers a prepared message.
	Send(email *Email) error

	// SendWelcome sends the signup welcome mail.
	SendWelcome(to, name string) error

	// SendTicketUpdate notifies a ticket owner about a status change
	// or a new reply.
	SendTicketUpdate(to, ticketNumber, status string) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

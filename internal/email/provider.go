package email

// Email is an outbound message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the payload handed to email templates.
type TemplateData map[string]interface{}

// Provider sends transactional email. Every implementation is treated as
// a best-effort secondary channel: callers log failures and continue.
type Provider interface {
	// Send delivers a prepared message.
	Send(email *Email) error

	// SendTemplate renders templateName with data and delivers the result.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

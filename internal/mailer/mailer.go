package mailer

// Mailer sends a templated email to a single recipient. Sending happens off
// the request path; failures are logged, never surfaced to the buyer.
type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

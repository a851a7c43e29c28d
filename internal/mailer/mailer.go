package mailer

// Mailer delivers a single plain-text message. Credentials and transport
// details live in the implementation.
type Mailer interface {
	Send(to, subject, body string) error
}

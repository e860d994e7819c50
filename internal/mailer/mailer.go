// Package mailer sends transactional email over SMTP using templates
// embedded in the binary.
package mailer

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}
